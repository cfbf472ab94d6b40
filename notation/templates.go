package notation

import "text/template"

var (
	tmplFuncs = template.FuncMap{
		"scope":        newScope,
		"formalParams": formalParams,
		"statement":    statement,
	}
	sourceTemplate = template.Must(template.New("").Funcs(tmplFuncs).Parse(sourceText))
)

const sourceText = `
{{- define "main" -}}
PROGRAM {{ .Name }};
{{ template "block" (scope .Block "") }}.
{{ end }}

{{- define "block" }}
	{{- $indent := .Indent }}
	{{- with .Block.VarDecls }}{{ $indent }}VAR
	{{- range . }}
{{ $indent }}   {{ .Var.Name }} : {{ .Type.Name }};
	{{- end }}
{{ end }}
	{{- range .Block.ProcedureDecls }}{{ $indent }}PROCEDURE {{ .Name }}{{ formalParams .Params }};
{{ template "block" (scope .Block (print $indent "   ")) }};
{{ end }}
	{{- $indent }}{{ statement .Block.Compound $indent }}
{{- end }}
`
