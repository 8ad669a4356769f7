// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/deadliner/pkg/types"
)

// DefaultMaxBlocks bounds the composed message's block count when the
// configuration does not set one. Delivery channels reject oversized block
// payloads.
const DefaultMaxBlocks = 30

// defaultLinkBase is the source-link prefix when none is configured.
const defaultLinkBase = "https://github.com"

// githubNoreplyPattern matches both GitHub noreply address forms:
// 12345+username@users.noreply.github.com and
// username@users.noreply.github.com.
var githubNoreplyPattern = regexp.MustCompile(`^(?:\d+\+)?([A-Za-z0-9-]+)@users\.noreply\.github\.com$`)

// BuildMessage composes the notification for the given records. A
// configured template selects the template contract; otherwise, or when the
// template fails to render, the default block layout is used.
func BuildMessage(records []types.AnnotationRecord, cfg types.NotifyConfig, ref time.Time) types.Message {
	if cfg.Template != "" && len(records) > 0 {
		return ComposeFromTemplate(records, cfg, ref)
	}
	return Compose(records, cfg, ref)
}

// Compose renders the default block layout: a header, a summary of the
// matching count, a divider, then one block group per record while the
// running block total stays within the configured maximum. Once the budget
// would be exceeded a single "N more" notice replaces further detail. With
// zero records the message collapses to one acknowledgement block.
func Compose(records []types.AnnotationRecord, cfg types.NotifyConfig, ref time.Time) types.Message {
	p := phrasesFor(cfg.Language)

	if len(records) == 0 {
		return types.Message{
			Channel: cfg.Channel,
			Text:    p.noDeadlines,
			Blocks:  []types.Block{types.NewSectionBlock(p.noDeadlines)},
		}
	}

	maxBlocks := cfg.MaxBlocks
	if maxBlocks <= 0 {
		maxBlocks = DefaultMaxBlocks
	}

	summary := p.summary(len(records))
	blocks := []types.Block{
		types.NewHeaderBlock(p.header),
		types.NewSectionBlock(summary),
		types.NewDividerBlock(),
	}

	for i, rec := range records {
		group := recordBlocks(rec, cfg, ref, p)
		if len(blocks)+len(group) > maxBlocks {
			blocks = append(blocks, types.NewSectionBlock(fmt.Sprintf(p.more, len(records)-i)))
			break
		}
		blocks = append(blocks, group...)
	}

	return types.Message{Channel: cfg.Channel, Text: summary, Blocks: blocks}
}

// recordBlocks renders one record's block group: status line with mention,
// two field pairs, the optional description, and a trailing divider.
func recordBlocks(rec types.AnnotationRecord, cfg types.NotifyConfig, ref time.Time, p phraseSet) []types.Block {
	diff := DayDiff(rec.Deadline, ref)

	statusLine := statusMarkers[classifyStatus(diff)] + " " + p.statusPhrase(diff)
	if mention := ResolveMention(rec, cfg.Mentions); mention != "" {
		statusLine += " " + mention
	}

	author := p.unknownAuthor
	if rec.Attribution != nil {
		author = rec.Attribution.Name
	}
	location := fmt.Sprintf("<%s|%s:%d>", SourceLink(cfg, rec.SourcePath, rec.Line), relativePath(rec.SourcePath), rec.Line)

	blocks := []types.Block{
		types.NewSectionBlock(statusLine),
		types.NewFieldsBlock(
			fmt.Sprintf("*%s:*\n`%s`", p.fieldElement, rec.Element),
			fmt.Sprintf("*%s:*\n%s", p.fieldDeadline, rec.Deadline),
		),
		types.NewFieldsBlock(
			fmt.Sprintf("*%s:*\n%s", p.fieldLocation, location),
			fmt.Sprintf("*%s:*\n%s", p.fieldAuthor, author),
		),
	}
	if rec.Description != "" {
		blocks = append(blocks, types.NewSectionBlock(rec.Description))
	}
	return append(blocks, types.NewDividerBlock())
}

// ResolveMention picks the mention for a record, first match wins: the
// record's explicit directive, the GitHub-noreply username through the
// mention map, the raw attribution email, then the attribution display
// name. No match means no mention.
func ResolveMention(rec types.AnnotationRecord, mentions map[string]string) string {
	if rec.Mention != "" {
		return rec.Mention
	}
	if rec.Attribution == nil {
		return ""
	}
	if m := githubNoreplyPattern.FindStringSubmatch(rec.Attribution.Email); m != nil {
		if id, ok := mentions[m[1]]; ok {
			return "<@" + id + ">"
		}
	}
	if id, ok := mentions[rec.Attribution.Email]; ok {
		return "<@" + id + ">"
	}
	if id, ok := mentions[rec.Attribution.Name]; ok {
		return "<@" + id + ">"
	}
	return ""
}

// SourceLink builds the browse URL for a record's source position:
// base/{repository}/blob/{branch}/{path}#L{line}. A leading ./ on the path
// is stripped.
func SourceLink(cfg types.NotifyConfig, path string, line int) string {
	base := cfg.LinkBase
	if base == "" {
		base = defaultLinkBase
	}
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	return fmt.Sprintf("%s/%s/blob/%s/%s#L%d", base, cfg.Repository, branch, relativePath(path), line)
}

// relativePath strips a leading ./ from a source path.
func relativePath(path string) string {
	return strings.TrimPrefix(path, "./")
}
