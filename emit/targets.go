package emit

import (
	"fmt"
	"math/rand"
)

// Targets lists the supported --target values, in the order they should be
// presented to a user (e.g. in CLI help text).
var Targets = []string{"bash", "csharp", "c", "javascript", "java", "masm64", "powershell", "python"}

// aliases maps recognised shorthand LANG spellings onto their canonical
// Targets entry, so e.g. --target py works the same as --target python.
var aliases = map[string]string{
	"js":      "javascript",
	"py":      "python",
	"c#":      "csharp",
	"c_sharp": "csharp",
	"cpp":     "c",
	"c++":     "c",
	"ps":      "powershell",
}

// ByName returns a fresh Backend for the given target name. rng may be nil
// to let the backend pick its own non-deterministic identifier source.
// target may be a canonical Targets entry or one of the aliases above.
func ByName(target string, rng *rand.Rand) (Backend, error) {
	if canonical, ok := aliases[target]; ok {
		target = canonical
	}
	switch target {
	case "bash":
		return NewBash(rng), nil
	case "csharp":
		return NewCSharp(rng), nil
	case "c":
		return NewC(rng), nil
	case "javascript":
		return NewJavaScript(rng), nil
	case "java":
		return NewJava(rng), nil
	case "masm64":
		return NewMASM64(rng), nil
	case "powershell":
		return NewPowerShell(rng), nil
	case "python":
		return NewPython(rng), nil
	default:
		return nil, fmt.Errorf("emit: unknown target %q", target)
	}
}
