package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// Split separates the YAML header from the body. Content without a header
// yields an empty header.
func Split(content string) (header string, body string, err error) {
	if !strings.HasPrefix(content, fence) {
		return "", content, nil
	}
	rest := strings.TrimPrefix(content, fence)
	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return "", "", fmt.Errorf("frontmatter: missing closing fence")
	}
	return rest[:idx+1], rest[idx+1+len(fence):], nil
}

// Decode unmarshals the header into out and returns the body.
func Decode(content string, out any) (string, error) {
	header, body, err := Split(content)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(header) == "" {
		return "", fmt.Errorf("frontmatter: header is empty")
	}
	if err := yaml.Unmarshal([]byte(header), out); err != nil {
		return "", fmt.Errorf("frontmatter: %w", err)
	}
	return body, nil
}

func Render(meta any, body string) (string, error) {
	buf := bytes.Buffer{}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("frontmatter: %w", err)
	}

	out := strings.Builder{}
	out.WriteString(fence)
	out.Write(buf.Bytes())
	out.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		out.WriteString("\n")
	}
	out.WriteString(body)
	return out.String(), nil
}
