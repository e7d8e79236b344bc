package k8s

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	storagev1 "k8s.io/api/storage/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/kubernetes/scheme"
)

// typedClient is the subset of every client-go typed resource client that
// create-or-update needs.
type typedClient[T metav1.Object] interface {
	Get(ctx context.Context, name string, opts metav1.GetOptions) (T, error)
	Create(ctx context.Context, obj T, opts metav1.CreateOptions) (T, error)
	Update(ctx context.Context, obj T, opts metav1.UpdateOptions) (T, error)
}

// mergeFunc copies the mutable fields of desired into existing and reports
// whether anything changed. A nil mergeFunc leaves existing objects alone.
type mergeFunc[T metav1.Object] func(existing, desired T) bool

func ensure[T metav1.Object](ctx context.Context, rc typedClient[T], kind string, desired T, merge mergeFunc[T]) (ApplyResult, error) {
	res := ApplyResult{Kind: kind, Namespace: desired.GetNamespace(), Name: desired.GetName()}

	existing, err := rc.Get(ctx, desired.GetName(), metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		if _, err := rc.Create(ctx, desired, metav1.CreateOptions{}); err != nil {
			if apierrors.IsAlreadyExists(err) {
				res.Action = ActionUnchanged
				return res, nil
			}
			return res, fmt.Errorf("failed to create %s: %w", res, err)
		}
		res.Action = ActionCreated
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to get %s: %w", res, err)
	}

	if merge == nil || !merge(existing, desired) {
		res.Action = ActionUnchanged
		return res, nil
	}
	if _, err := rc.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return res, fmt.Errorf("failed to update %s: %w", res, err)
	}
	res.Action = ActionUpdated
	return res, nil
}

// mergeMeta merges labels and annotations of desired into existing.
func mergeMeta(existing, desired metav1.Object) bool {
	changed := false
	if l, ok := mergeStringMap(existing.GetLabels(), desired.GetLabels()); ok {
		existing.SetLabels(l)
		changed = true
	}
	if a, ok := mergeStringMap(existing.GetAnnotations(), desired.GetAnnotations()); ok {
		existing.SetAnnotations(a)
		changed = true
	}
	return changed
}

func mergeStringMap(dst, src map[string]string) (map[string]string, bool) {
	changed := false
	for k, v := range src {
		if cur, ok := dst[k]; ok && cur == v {
			continue
		}
		if dst == nil {
			dst = make(map[string]string, len(src))
		}
		dst[k] = v
		changed = true
	}
	return dst, changed
}

// Apply creates or updates a single typed object.
func (c *client) Apply(ctx context.Context, obj runtime.Object) (ApplyResult, error) {
	switch o := obj.(type) {
	case *corev1.ServiceAccount:
		ns := namespaceOrDefault(o)
		return ensure(ctx, c.clientset.CoreV1().ServiceAccounts(ns), "ServiceAccount", o,
			func(existing, desired *corev1.ServiceAccount) bool {
				return mergeMeta(existing, desired)
			})
	case *corev1.ConfigMap:
		ns := namespaceOrDefault(o)
		return ensure(ctx, c.clientset.CoreV1().ConfigMaps(ns), "ConfigMap", o,
			func(existing, desired *corev1.ConfigMap) bool {
				changed := mergeMeta(existing, desired)
				if !maps.Equal(existing.Data, desired.Data) {
					existing.Data = desired.Data
					changed = true
				}
				return changed
			})
	case *storagev1.StorageClass:
		return ensure(ctx, c.clientset.StorageV1().StorageClasses(), "StorageClass", o, nil)
	case *corev1.PersistentVolume:
		return ensure(ctx, c.clientset.CoreV1().PersistentVolumes(), "PersistentVolume", o, nil)
	case *corev1.PersistentVolumeClaim:
		ns := namespaceOrDefault(o)
		return ensure(ctx, c.clientset.CoreV1().PersistentVolumeClaims(ns), "PersistentVolumeClaim", o, nil)
	case *batchv1.Job:
		ns := namespaceOrDefault(o)
		return ensure(ctx, c.clientset.BatchV1().Jobs(ns), "Job", o, nil)
	case *corev1.Pod:
		ns := namespaceOrDefault(o)
		return ensure(ctx, c.clientset.CoreV1().Pods(ns), "Pod", o, nil)
	default:
		return ApplyResult{}, fmt.Errorf("unsupported object type %T", obj)
	}
}

// namespaceOrDefault sets the default namespace on namespaced objects that
// have none and returns it.
func namespaceOrDefault(obj metav1.Object) string {
	if obj.GetNamespace() == "" {
		obj.SetNamespace(metav1.NamespaceDefault)
	}
	return obj.GetNamespace()
}

// ApplyManifests decodes multi-document YAML and applies each object in order.
// Empty documents are skipped. It stops at the first error and returns the
// results applied so far.
func (c *client) ApplyManifests(ctx context.Context, manifests []byte) ([]ApplyResult, error) {
	objs, err := DecodeManifests(manifests)
	if err != nil {
		return nil, err
	}
	results := make([]ApplyResult, 0, len(objs))
	for _, obj := range objs {
		res, err := c.Apply(ctx, obj)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// DecodeManifests splits multi-document YAML and decodes every document
// into a typed object registered with the client-go scheme.
func DecodeManifests(manifests []byte) ([]runtime.Object, error) {
	reader := yaml.NewYAMLReader(bufio.NewReader(bytes.NewReader(manifests)))
	decoder := scheme.Codecs.UniversalDeserializer()

	var objs []runtime.Object
	for docIndex := 0; ; docIndex++ {
		doc, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest document %d: %w", docIndex, err)
		}
		if len(bytes.TrimSpace(doc)) == 0 || isCommentOnly(doc) {
			continue
		}
		obj, _, err := decoder.Decode(doc, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decode manifest document %d: %w", docIndex, err)
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func isCommentOnly(doc []byte) bool {
	for _, line := range bytes.Split(doc, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) > 0 && line[0] != '#' && !bytes.Equal(line, []byte("---")) {
			return false
		}
	}
	return true
}
