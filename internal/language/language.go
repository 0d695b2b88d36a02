// Package language maps file extensions to the syntax tags used on fenced output blocks.
package language

import (
	"path/filepath"
	"strings"
)

// DefaultTag is used for files whose extension has no known syntax tag.
const DefaultTag = "text"

// extensionToTag is the static lookup table from lower-case file extension to
// the language identifier placed after the opening fence.
var extensionToTag = map[string]string{
	".abap":       "abap",
	".ads":        "ada",
	".adb":        "ada",
	".as":         "actionscript",
	".asciidoc":   "asciidoc",
	".adoc":       "asciidoc",
	".asm":        "assembly",
	".s":          "assembly",
	".ahk":        "autohotkey",
	".bat":        "batch",
	".bats":       "batch",
	".c":          "c",
	".h":          "c",
	".cs":         "csharp",
	".clj":        "clojure",
	".cljs":       "clojure",
	".coffee":     "coffeescript",
	".cpp":        "cpp",
	".hpp":        "cpp",
	".cc":         "cpp",
	".cxx":        "cpp",
	".css":        "css",
	".d":          "d",
	".dart":       "dart",
	".diff":       "diff",
	".patch":      "diff",
	".dockerfile": "dockerfile",
	".ex":         "elixir",
	".exs":        "elixir",
	".elm":        "elm",
	".erl":        "erlang",
	".hrl":        "erlang",
	".go":         "go",
	".groovy":     "groovy",
	".gradle":     "groovy",
	".hs":         "haskell",
	".lhs":        "haskell",
	".html":       "html",
	".htm":        "html",
	".xhtml":      "html",
	".hbs":        "handlebars",
	".ini":        "ini",
	".java":       "java",
	".js":         "javascript",
	".jsx":        "javascript",
	".json":       "json",
	".jl":         "julia",
	".kt":         "kotlin",
	".kts":        "kotlin",
	".less":       "less",
	".lua":        "lua",
	".md":         "markdown",
	".mkd":        "markdown",
	".matlab":     "matlab",
	".m":          "matlab",
	".nix":        "nix",
	".mli":        "ocaml",
	".ml":         "ocaml",
	".php":        "php",
	".pl":         "perl",
	".pm":         "perl",
	".ps1":        "powershell",
	".psm1":       "powershell",
	".proto":      "protobuf",
	".py":         "python",
	".r":          "r",
	".rb":         "ruby",
	".rs":         "rust",
	".sass":       "sass",
	".scss":       "scss",
	".scala":      "scala",
	".sh":         "bash",
	".bash":       "bash",
	".sql":        "sql",
	".swift":      "swift",
	".tex":        "tex",
	".toml":       "toml",
	".ts":         "typescript",
	".tsx":        "typescript",
	".vb":         "vbnet",
	".xml":        "xml",
	".yaml":       "yaml",
	".yml":        "yaml",
	".zig":        "zig",
}

// TagForPath returns the syntax tag for the file at path, derived from its
// extension, falling back to DefaultTag for unknown extensions.
func TagForPath(path string) string {
	extension := strings.ToLower(filepath.Ext(path))
	if tag, known := extensionToTag[extension]; known {
		return tag
	}
	return DefaultTag
}
