// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/deadliner/pkg/types"
)

// templateData carries the fields available to a custom message template.
// Count and Date are whole-message values; the rest are per-record.
type templateData struct {
	Count            int
	Date             string
	Element          string
	Path             string
	Line             int
	Deadline         string
	Author           string
	Description      string
	Excerpt          string
	Link             string
	Days             int
	Mention          string
	MentionDirective string
}

// ComposeFromTemplate renders the configured custom template once per
// record and joins the copies with blank lines into a text-only message.
// Any parse or execution failure falls back to the default block layout;
// a partial render is never emitted.
func ComposeFromTemplate(records []types.AnnotationRecord, cfg types.NotifyConfig, ref time.Time) types.Message {
	msg, err := renderTemplate(records, cfg, ref)
	if err != nil {
		return Compose(records, cfg, ref)
	}
	return msg
}

func renderTemplate(records []types.AnnotationRecord, cfg types.NotifyConfig, ref time.Time) (types.Message, error) {
	tmpl, err := template.New("notify").Parse(cfg.Template)
	if err != nil {
		return types.Message{}, err
	}

	p := phrasesFor(cfg.Language)
	date := ref.Format("2006-01-02")

	parts := make([]string, 0, len(records))
	for _, rec := range records {
		author := p.unknownAuthor
		if rec.Attribution != nil {
			author = rec.Attribution.Name
		}
		data := templateData{
			Count:            len(records),
			Date:             date,
			Element:          rec.Element,
			Path:             relativePath(rec.SourcePath),
			Line:             rec.Line,
			Deadline:         rec.Deadline.String(),
			Author:           author,
			Description:      rec.Description,
			Excerpt:          rec.CodeExcerpt,
			Link:             SourceLink(cfg, rec.SourcePath, rec.Line),
			Days:             DayDiff(rec.Deadline, ref),
			Mention:          ResolveMention(rec, cfg.Mentions),
			MentionDirective: rec.Mention,
		}

		var b strings.Builder
		if err := tmpl.Execute(&b, data); err != nil {
			return types.Message{}, err
		}
		parts = append(parts, b.String())
	}

	return types.Message{Channel: cfg.Channel, Text: strings.Join(parts, "\n\n")}, nil
}
