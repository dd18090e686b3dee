package bearreader

import (
	"fmt"
	"strings"
)

// FormatBlocks renders blocks as a Markdown document.
// Blocks are separated by blank lines.
func FormatBlocks(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := FormatBlock(b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// FormatBlock renders a single block as Markdown.
func FormatBlock(b Block) string {
	switch b := b.(type) {
	case TextBlock:
		return string(b.Text)
	case ImageBlock:
		return fmt.Sprintf("![%s](%s)", b.AltText, b.URL)
	case CodeBlock:
		return "```\n" + strings.TrimRight(b.Text, "\n") + "\n```"
	case Header2Block:
		return "## " + b.Text
	case Header3Block:
		return "### " + b.Text
	case UpvoteBlock:
		return fmt.Sprintf("▲ %d", b.Count)
	case TagListBlock:
		tags := make([]string, 0, len(b.Tags))
		for _, t := range b.Tags {
			tags = append(tags, t.Text)
		}
		return strings.Join(tags, " ")
	case VideoBlock:
		if b.ThumbnailURL != "" {
			return fmt.Sprintf("[![%s](%s)](%s)", b.Title, b.ThumbnailURL, b.EmbedURL)
		}
		return fmt.Sprintf("[%s: %s](%s)", b.Platform, b.Title, b.EmbedURL)
	default:
		return ""
	}
}

// FormatPost renders a post with its title as a top-level heading.
// Falls back to the URL when the title is empty.
func FormatPost(post *PostContent) string {
	header := post.Title
	if header == "" {
		header = post.URL
	}
	body := FormatBlocks(post.Blocks)
	if body == "" {
		return "# " + header
	}
	return "# " + header + "\n\n" + body
}
