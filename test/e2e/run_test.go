//go:build e2e

package e2e

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/provisioning"
	"github.com/imamik/aks-storage/internal/provisioning/cluster"
	"github.com/imamik/aks-storage/internal/provisioning/infrastructure"
	"github.com/imamik/aks-storage/internal/provisioning/storage"
	"github.com/imamik/aks-storage/internal/provisioning/validation"
)

func pipeline() []provisioning.Phase {
	return []provisioning.Phase{
		provisioning.NewPreflightPhase(),
		infrastructure.NewProvisioner(),
		cluster.NewProvisioner(),
		storage.NewProvisioner(),
		validation.NewProvisioner(),
	}
}

var _ = Describe("Run", Ordered, func() {
	DescribeTable("validates the selected use cases",
		func(storageType config.StorageType, provision config.ProvisionType, disableSharedKey bool, wantCases int) {
			cfg := newConfig(storageType, provision, disableSharedKey)
			runs = append(runs, cfg)
			pCtx := newContext(cfg)

			Expect(provisioning.RunPhases(pCtx, pipeline())).To(Succeed())

			By("recording one passing result per use case")
			Expect(pCtx.State.Results).To(HaveLen(wantCases))
			for _, r := range pCtx.State.Results {
				Expect(r.Passed).To(BeTrue(), "%s: %s", r.UseCase, r.Message)
				Expect(r.Message).To(Equal(r.UseCase.Marker()))
			}
			Expect(provisioning.ExitCode(pCtx.State.Results)).To(Equal(provisioning.ExitAllPassed))

			By("configuring the storage account shared key access")
			if cfg.NeedsStorageAccount() {
				Expect(pCtx.State.StorageAccount).NotTo(BeNil())
				Expect(pCtx.State.StorageAccount.AllowSharedKeyAccess).To(Equal(cfg.AllowSharedKeyAccess()))
			} else {
				Expect(pCtx.State.StorageAccount).To(BeNil())
			}

			By("exposing an OIDC issuer for the federated credential")
			Expect(pCtx.State.Cluster.OIDCIssuerURL).To(HavePrefix("https://"))
		},
		Entry("keyless static blob", config.StorageBlob, config.ProvisionPersistent, true, 1),
		Entry("all four use cases", config.StorageType(""), config.ProvisionType(""), false, 4),
	)
})
