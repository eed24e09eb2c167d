package domain

// Artifact describes one written output as reported by the engine.
type Artifact struct {
	// Path is where the artifact was written.
	Path string
	// Size is the artifact size in bytes.
	Size int64
	// Digest is a content hash of the artifact, hex encoded.
	Digest string
}

// BuildResult is the outcome of one engine invocation for one target:
// either an artifact or a captured failure, never both.
type BuildResult struct {
	Target   string
	Artifact *Artifact
	Err      error
}

// Failed reports whether the build failed.
func (r BuildResult) Failed() bool {
	return r.Err != nil
}

// FailureCount counts failed results in an aggregate run.
func FailureCount(results []BuildResult) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}
