package coach

import (
	"bytes"
	"text/template"

	"github.com/abhisek/mockview/internal/interview"
)

const systemPrompt = `You are an experienced interview coach reviewing a candidate's mock placement interview.
You are given the automatic scores and the candidate's answers.

Instructions:
- Base every remark on the answers shown. Do not invent experience the candidate did not mention.
- Be direct and encouraging. Address the candidate as "you".
- Focus areas name a topic or habit, not a score.
- Practice plan items are concrete actions the candidate can do this week.
- Never change or dispute the scores.`

var userTemplate = template.Must(template.New("coach").Funcs(template.FuncMap{
	"add1": func(i int) int { return i + 1 },
}).Parse(`Overall score: {{.Report.OverallScore}}/100 (grade {{.Report.Grade}}, {{.Report.PlacementReady}})
Answered: {{.Report.QuestionsAnswered}}, skipped: {{.Report.QuestionsSkipped}}
{{- if .Report.Strengths}}
Strengths: {{range $i, $s := .Report.Strengths}}{{if $i}}; {{end}}{{$s}}{{end}}
{{- end}}
{{- if .Report.Weaknesses}}
Weaknesses: {{range $i, $s := .Report.Weaknesses}}{{if $i}}; {{end}}{{$s}}{{end}}
{{- end}}
Filler words used: {{.Communication.FillerWords}}

Questions:
{{range .Questions}}
{{.QuestionNumber}}. [{{.Category.Label}}] {{.QuestionText}}
{{- if .Skipped}}
   (skipped)
{{- else}}
   Answer: {{.Answer}}
   Score: {{printf "%.1f" .Score}}/10
{{- if .MissedKeywords}}
   Missed: {{range $i, $k := .MissedKeywords}}{{if $i}}, {{end}}{{$k}}{{end}}
{{- end}}
{{- end}}
{{end}}`))

func buildUserMessage(res *interview.Result) (string, error) {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, res); err != nil {
		return "", err
	}
	return buf.String(), nil
}
