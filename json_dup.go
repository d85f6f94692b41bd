package timelint

import (
	eng "github.com/reoring/timelint/internal/engine"
)

// DuplicateKeysBytes reports every object key that repeats inside the same
// JSON object, at the pointer of the repeated key. maxIssues < 0 means
// unlimited; 0 disables reporting; > 0 caps the list and appends a truncated
// marker.
func (l Loader) DuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	mode := toEngineDup(strict.OnDuplicateKey)
	si, err := eng.DetectJSONDuplicateKeysBytes(data, mode, maxIssues)
	if err != nil {
		return nil, err
	}
	return l.fromEngineIssues(si), nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func (l Loader) fromEngineIssues(si []eng.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		it := Issue{Code: s.Code, Path: s.Path, Message: s.Message}
		if s.Code == CodeDuplicateKey {
			it.Message = l.tr().Message(CodeDuplicateKey, map[string]string{"key": s.Key})
			it.Params = map[string]any{"key": s.Key}
		}
		iss = AppendIssues(iss, it)
	}
	return iss
}
