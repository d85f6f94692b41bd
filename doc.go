// Package timelint holds the shared pieces of the timeline content validator:
//
// - A stable error model via Issues (JSON Pointer, code, localized message)
// - Loading content files (JSON or YAML) into a generic tree via Loader
// - Duplicate object key detection on the raw JSON token stream
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Schema descriptors live under dsl/, the timeline rules under timeline/, and the CLI under cmd/timelint.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v := timeline.New(timeline.DefaultOptions())
//	rep := v.Run("content/timeline.json", "public")
//	for _, line := range rep.Errors.Lines() {
//		fmt.Println("-", line)
//	}
package timelint
