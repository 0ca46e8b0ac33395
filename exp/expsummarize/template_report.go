package main

const templateReport = `# {{.Title}}

Gerado em {{.Timestamp}}. Vazão em {{.Unit}}. Cada célula é a média ± a meia-largura do intervalo de confiança de 95%.

## Visão geral

| Teste | Vazão cliente ({{.Unit}}) | Vazão servidor ({{.Unit}}) | Perda |{{range .Cores}} {{.}} (%) |{{end}}
|---|---|---|---|{{range .Cores}}---|{{end}}
{{range .Overview}}| {{.Name}} | {{.Client}} | {{.Server}} | {{.Loss}} |{{range .CPU}} {{.}} |{{end}}
{{end}}
{{- with .Reference}}
Referência: **{{.Name}}**, vazão do servidor {{.Server}}.
{{end}}
{{- range .Tests}}
## {{.DisplayName}}

Rodadas computadas: {{.RoundCount}}. Perda medida como {{.LossLabel}}.

| Rodada | Vazão cliente | Vazão servidor | Perda |{{range $.Cores}} {{.}} (%) |{{end}}
|---|---|---|---|{{range $.Cores}}---|{{end}}
{{range .Rows}}| {{.Name}} | {{.Client}} | {{.Server}} | {{.Loss}} |{{range .CPU}} {{.}} |{{end}}
{{end}}
{{- end}}`
