package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	storagev1 "k8s.io/api/storage/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
)

const testManifests = `# rendered for test
apiVersion: v1
kind: ServiceAccount
metadata:
  name: storage-sa
  namespace: default
  annotations:
    azure.workload.identity/client-id: client-a
---
---
apiVersion: storage.k8s.io/v1
kind: StorageClass
metadata:
  name: aks-storage-file
provisioner: file.csi.azure.com
parameters:
  skuName: Standard_LRS
---
apiVersion: v1
kind: ConfigMap
metadata:
  name: scripts
data:
  write.sh: echo hi
`

func TestDecodeManifests(t *testing.T) {
	t.Parallel()

	objs, err := DecodeManifests([]byte(testManifests))
	require.NoError(t, err)
	require.Len(t, objs, 3)
	assert.IsType(t, &corev1.ServiceAccount{}, objs[0])
	assert.IsType(t, &storagev1.StorageClass{}, objs[1])
	assert.IsType(t, &corev1.ConfigMap{}, objs[2])
}

func TestDecodeManifests_Empty(t *testing.T) {
	t.Parallel()
	objs, err := DecodeManifests([]byte("---\n---\n"))
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestDecodeManifests_UnknownKind(t *testing.T) {
	t.Parallel()
	_, err := DecodeManifests([]byte("apiVersion: example.com/v1\nkind: Widget\nmetadata:\n  name: w\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode manifest document 0")
}

func TestApplyManifests_CreatesThenUpdates(t *testing.T) {
	t.Parallel()

	cs := fake.NewClientset()
	c := NewFromClients(cs)
	ctx := context.Background()

	results, err := c.ApplyManifests(ctx, []byte(testManifests))
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, ActionCreated, r.Action, r.String())
	}
	assert.Equal(t, "default", results[2].Namespace, "namespace defaults for namespaced kinds")

	// Second apply with a new client id updates the ServiceAccount only.
	updated := []byte(`apiVersion: v1
kind: ServiceAccount
metadata:
  name: storage-sa
  namespace: default
  annotations:
    azure.workload.identity/client-id: client-b
`)
	results, err = c.ApplyManifests(ctx, append(updated, []byte("---\n"+testManifests)...))
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, ActionUpdated, results[0].Action)
	assert.Equal(t, ActionUpdated, results[1].Action, "client id flips back to client-a")
	assert.Equal(t, ActionUnchanged, results[2].Action)
	assert.Equal(t, ActionUnchanged, results[3].Action)

	sa, err := cs.CoreV1().ServiceAccounts("default").Get(ctx, "storage-sa", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "client-a", sa.Annotations["azure.workload.identity/client-id"])
}

func TestApply_ConfigMapDataUpdated(t *testing.T) {
	t.Parallel()

	cs := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "scripts", Namespace: "default"},
		Data:       map[string]string{"write.sh": "old"},
	})
	c := NewFromClients(cs)

	res, err := c.Apply(context.Background(), &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "scripts", Namespace: "default"},
		Data:       map[string]string{"write.sh": "new"},
	})
	require.NoError(t, err)
	assert.Equal(t, ActionUpdated, res.Action)

	cm, err := cs.CoreV1().ConfigMaps("default").Get(context.Background(), "scripts", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "new", cm.Data["write.sh"])
}

func TestApply_ImmutableKindsLeftAlone(t *testing.T) {
	t.Parallel()

	existingJob := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{Name: "static-blob-creator", Namespace: "default"},
		Spec: batchv1.JobSpec{Template: corev1.PodTemplateSpec{Spec: corev1.PodSpec{
			Containers: []corev1.Container{{Name: "creator", Image: "old"}},
		}}},
	}
	existingPV := &corev1.PersistentVolume{ObjectMeta: metav1.ObjectMeta{Name: "static-blob-pv"}}
	cs := fake.NewClientset(existingJob, existingPV)
	c := NewFromClients(cs)
	ctx := context.Background()

	job := existingJob.DeepCopy()
	job.Spec.Template.Spec.Containers[0].Image = "new"
	res, err := c.Apply(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, res.Action)

	got, err := cs.BatchV1().Jobs("default").Get(ctx, "static-blob-creator", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "old", got.Spec.Template.Spec.Containers[0].Image)

	res, err = c.Apply(ctx, &corev1.PersistentVolume{ObjectMeta: metav1.ObjectMeta{Name: "static-blob-pv"}})
	require.NoError(t, err)
	assert.Equal(t, ActionUnchanged, res.Action)
	assert.Empty(t, res.Namespace)
}

func TestApply_AllKinds(t *testing.T) {
	t.Parallel()

	c := NewFromClients(fake.NewClientset())
	ctx := context.Background()

	tests := []struct {
		kind string
		obj  runtime.Object
	}{
		{"PersistentVolumeClaim", &corev1.PersistentVolumeClaim{ObjectMeta: metav1.ObjectMeta{Name: "pvc"}}},
		{"Pod", &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "reader"}}},
		{"Job", &batchv1.Job{ObjectMeta: metav1.ObjectMeta{Name: "creator"}}},
		{"StorageClass", &storagev1.StorageClass{ObjectMeta: metav1.ObjectMeta{Name: "sc"}, Provisioner: "blob.csi.azure.com"}},
	}
	for _, tt := range tests {
		res, err := c.Apply(ctx, tt.obj)
		require.NoError(t, err, tt.kind)
		assert.Equal(t, tt.kind, res.Kind)
		assert.Equal(t, ActionCreated, res.Action)
	}
}

func TestApply_UnsupportedType(t *testing.T) {
	t.Parallel()
	c := NewFromClients(fake.NewClientset())
	_, err := c.Apply(context.Background(), &corev1.Secret{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported object type")
}

func TestMergeStringMap(t *testing.T) {
	t.Parallel()

	out, changed := mergeStringMap(nil, map[string]string{"a": "1"})
	assert.True(t, changed)
	assert.Equal(t, map[string]string{"a": "1"}, out)

	out, changed = mergeStringMap(map[string]string{"a": "1", "b": "2"}, map[string]string{"a": "1"})
	assert.False(t, changed)
	assert.Len(t, out, 2, "keys not in desired are kept")

	_, changed = mergeStringMap(map[string]string{"a": "1"}, nil)
	assert.False(t, changed)
}
