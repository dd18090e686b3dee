package bearreader

import "context"

// StyledText is display-ready rich text produced by a Converter from an
// inline HTML fragment. The CLI renders it as Markdown.
type StyledText string

// BlockKind identifies the variant of a Block.
type BlockKind string

// BlockKind constants.
const (
	BlockText    BlockKind = "text"
	BlockImage   BlockKind = "image"
	BlockCode    BlockKind = "code"
	BlockHeader2 BlockKind = "header2"
	BlockHeader3 BlockKind = "header3"
	BlockUpvote  BlockKind = "upvote"
	BlockTags    BlockKind = "tags"
	BlockVideo   BlockKind = "video"
)

// Block is one unit of a post body. The set of implementations is closed:
// only the types in this file satisfy it.
type Block interface {
	Kind() BlockKind
	block()
}

// TextBlock is paragraph-level prose.
type TextBlock struct {
	Text StyledText
}

// ImageBlock is an image in the post body. NeedsPadding is true when the
// image was a direct child of the content container rather than wrapped in
// a paragraph.
type ImageBlock struct {
	URL          string
	AltText      string
	NeedsPadding bool
}

// CodeBlock is preformatted code with markup stripped.
type CodeBlock struct {
	Text string
}

// Header2Block is a second-level heading.
type Header2Block struct {
	Text string
}

// Header3Block is a third-level heading.
type Header3Block struct {
	Text string
}

// UpvoteBlock is the platform's upvote widget.
type UpvoteBlock struct {
	UID   string
	Title string
	Count int
}

// TagRef is a single post tag. Text starts with "#"; Query is the value
// used to search the blog for the tag.
type TagRef struct {
	Text  string
	Query string
}

// TagListBlock is the list of tags attached to a post.
type TagListBlock struct {
	Tags []TagRef
}

// VideoBlock is an embedded video.
type VideoBlock struct {
	EmbedURL     string
	ThumbnailURL string
	Title        string
	Platform     Platform
}

func (TextBlock) Kind() BlockKind    { return BlockText }
func (ImageBlock) Kind() BlockKind   { return BlockImage }
func (CodeBlock) Kind() BlockKind    { return BlockCode }
func (Header2Block) Kind() BlockKind { return BlockHeader2 }
func (Header3Block) Kind() BlockKind { return BlockHeader3 }
func (UpvoteBlock) Kind() BlockKind  { return BlockUpvote }
func (TagListBlock) Kind() BlockKind { return BlockTags }
func (VideoBlock) Kind() BlockKind   { return BlockVideo }

func (TextBlock) block()    {}
func (ImageBlock) block()   {}
func (CodeBlock) block()    {}
func (Header2Block) block() {}
func (Header3Block) block() {}
func (UpvoteBlock) block()  {}
func (TagListBlock) block() {}
func (VideoBlock) block()   {}

// Platform identifies the provider of an embedded video.
type Platform int

// Platform constants.
const (
	PlatformGenericVideo Platform = iota
	PlatformYouTube
	PlatformVimeo
)

// String returns the display name of the platform.
func (p Platform) String() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformVimeo:
		return "Vimeo"
	default:
		return "Video"
	}
}

// YouTubeThumbnailURL returns the predictable thumbnail URL for a YouTube
// video ID.
func YouTubeThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}

// PostContent is the structured body of a single post.
type PostContent struct {
	URL    string
	Title  string
	Blocks []Block
}

// ContentExtractor converts a post page into content blocks.
type ContentExtractor interface {
	// ExtractContent locates the main-content element using sel.MainContent
	// and converts its children into blocks in document order.
	// Returns a nil slice and nil error when no element matches the selector.
	// Returns EPARSE only when the document cannot be parsed at all.
	ExtractContent(html string, sel Selectors) ([]Block, error)
}

// PostWriter saves posts for offline reading.
type PostWriter interface {
	// WritePost stores the post and returns the location it was written to.
	WritePost(ctx context.Context, post *PostContent) (string, error)
}
