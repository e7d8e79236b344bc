// Package manifests renders the Kubernetes objects of a use case.
//
// Templates are embedded from the templates directory. Each use case has a
// directory named after its slug (static-blob, dynamic-file, ...) holding the
// volume objects, and every case shares the workload directory that adds the
// script ConfigMap, the creator Job and the reader Pod. Files are rendered in
// name order with text/template and the sprig function map, then joined into
// one multi-document YAML stream that [k8s.DecodeManifests] accepts.
package manifests
