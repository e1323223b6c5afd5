package fetch

import (
	"net/url"
	"strings"

	"github.com/jonathan/curriculum-curator/internal/types"
)

var blogHosts = []string{
	"medium.com",
	"dev.to",
	"hashnode.dev",
	"hashnode.com",
	"substack.com",
	"wordpress.com",
	"blogspot.com",
	"ghost.io",
}

// DetectSource classifies a resource URL as a YouTube video, a blog post or an article.
func DetectSource(urlStr string) types.ResourceSource {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return types.SourceArticle
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "youtu.be" || host == "youtube.com" || strings.HasSuffix(host, ".youtube.com") {
		return types.SourceYouTube
	}
	for _, h := range blogHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return types.SourceBlog
		}
	}
	if strings.HasPrefix(host, "blog.") || strings.Contains(parsed.Path, "/blog/") {
		return types.SourceBlog
	}
	return types.SourceArticle
}
