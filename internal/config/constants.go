package config

// Defaults mirrored by the CLI flags.
const (
	DefaultGroup          = "aks-storage-poc"
	DefaultLocation       = "centralus"
	DefaultNodeCount      = 1
	DefaultNodeVMSize     = "Standard_DS2_v2"
	DefaultNamespace      = "default"
	DefaultServiceAccount = "storage-sa"
	DefaultContainerName  = "mycontainer"
	DefaultShareName      = "myshare"
	DefaultTestImage      = "mcr.microsoft.com/azure-cli"
	DefaultStateFile      = "aks-storage-state.yaml"
	DefaultKubeconfig     = "kubeconfig"

	// FederatedCredentialName names the federated identity credential that
	// trusts the cluster's service account tokens.
	FederatedCredentialName = "storage-credential"

	// TokenExchangeAudience is the audience Entra ID expects for workload
	// identity token exchange.
	TokenExchangeAudience = "api://AzureADTokenExchange"

	// TestFileName is written by the creator job and read back by the reader.
	TestFileName = "test.txt"
)
