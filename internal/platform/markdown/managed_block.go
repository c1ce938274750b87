package markdown

import "strings"

// Block is a generated region of a markdown body delimited by HTML comment
// markers. Text outside the markers belongs to the user.
type Block struct {
	Start string
	End   string
}

func NewBlock(name string) Block {
	return Block{
		Start: "<!-- " + name + ":start -->",
		End:   "<!-- " + name + ":end -->",
	}
}

// Replace swaps the generated region in body, appending it when absent.
func (b Block) Replace(body, generated string) string {
	region := b.Start + "\n" + strings.TrimRight(generated, "\n") + "\n" + b.End
	start := strings.Index(body, b.Start)
	if start >= 0 {
		if end := strings.Index(body[start:], b.End); end >= 0 {
			end += start + len(b.End)
			return body[:start] + region + body[end:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return region + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + region + "\n"
	default:
		return body + "\n\n" + region + "\n"
	}
}

// Outside returns the user-owned text with the generated region removed.
func (b Block) Outside(body string) string {
	start := strings.Index(body, b.Start)
	if start < 0 {
		return body
	}
	end := strings.Index(body[start:], b.End)
	if end < 0 {
		return body
	}
	end += start + len(b.End)
	return body[:start] + body[end:]
}
