package blocks

import (
	"net/url"
	"strings"

	"github.com/yungbote/blockpage/internal/render/fields"
	"github.com/yungbote/blockpage/internal/render/media"
	"github.com/yungbote/blockpage/internal/render/node"
)

// standaloneVideoDefaults: a video block plays on demand with controls.
var standaloneVideoDefaults = fields.VideoSettings{PauseOnExit: true, Controls: true}

// video fields:
//
//	heading | title, caption | description
//	videoUrl | url | youtubeUrl | vimeoUrl | embedUrl    (YouTube/Vimeo become iframes)
//	video | videoFile | file                             (uploaded file)
//	poster | posterImage | thumbnail
//	settings | videoSettings | playback { autoplay, muted, loop, pauseOnExit, controls }
func (r *Renderer) video(b Block) result {
	f := b.Fields
	bg := surface(b, "black")
	settings := fields.VideoSettingsFrom(f, standaloneVideoDefaults)
	title := f.String("heading", "title")

	var player *node.Node
	link := f.String("videoUrl", "url", "youtubeUrl", "vimeoUrl", "embedUrl")
	if embed, ok := EmbedURL(link, settings); ok {
		player = node.El("iframe").
			Attr("src", embed).
			Attr("title", firstNonEmpty(title, "Embedded video")).
			Attr("allow", "autoplay; fullscreen; picture-in-picture").
			Attr("allowfullscreen", "").
			Attr("loading", "lazy")
	} else {
		src := link
		if ref := f.Any("video", "videoFile", "file"); media.Present(ref) {
			src = r.media().ResolveURL(ref)
		} else if src != "" {
			src = r.media().ResolveURL(src)
		}
		if src == "" {
			player = node.El("div", node.Text("Video unavailable")).Class("video-missing", "muted")
		} else {
			player = videoElement(src, posterURL(r, f), settings)
		}
	}

	return result{node: section(b, bg,
		heading("h2", title, "section-title"),
		node.El("div", player).Class("video-frame").Style("aspect-ratio: 16 / 9"),
		para(f.String("caption", "description"), "video-caption"),
	), surface: bg}
}

func videoElement(src, poster string, s fields.VideoSettings, classes ...string) *node.Node {
	v := node.El("video", node.El("source").Attr("src", src)).Class(classes...).
		Attr("playsinline", "").
		Attr("preload", "metadata").
		AttrIf("poster", poster)
	if s.Autoplay {
		v.Attr("autoplay", "")
	}
	if s.Muted {
		v.Attr("muted", "")
	}
	if s.Loop {
		v.Attr("loop", "")
	}
	if s.Controls {
		v.Attr("controls", "")
	}
	if s.PauseOnExit {
		v.Attr("data-pause-on-exit", "true")
	}
	return v
}

// EmbedURL converts YouTube and Vimeo page links into player URLs. ok is
// false for anything else.
func EmbedURL(raw string, s fields.VideoSettings) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	q := url.Values{}
	if s.Autoplay {
		q.Set("autoplay", "1")
	}
	if s.Muted {
		q.Set("mute", "1")
	}

	switch host {
	case "youtube.com", "m.youtube.com", "youtu.be", "youtube-nocookie.com":
		id := youTubeID(host, u)
		if id == "" {
			return "", false
		}
		if s.Loop {
			q.Set("loop", "1")
			q.Set("playlist", id)
		}
		if !s.Controls {
			q.Set("controls", "0")
		}
		return withQuery("https://www.youtube-nocookie.com/embed/"+id, q), true
	case "vimeo.com", "player.vimeo.com":
		id := lastDigits(u.Path)
		if id == "" {
			return "", false
		}
		if s.Muted {
			q.Del("mute")
			q.Set("muted", "1")
		}
		if s.Loop {
			q.Set("loop", "1")
		}
		return withQuery("https://player.vimeo.com/video/"+id, q), true
	default:
		return "", false
	}
}

func youTubeID(host string, u *url.URL) string {
	if host == "youtu.be" {
		return strings.Trim(u.Path, "/")
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 2 && (parts[0] == "embed" || parts[0] == "shorts" || parts[0] == "live") {
		return parts[1]
	}
	return ""
}

func lastDigits(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if p := parts[i]; p != "" && fields.Digits(p) == p {
			return p
		}
	}
	return ""
}

func withQuery(base string, q url.Values) string {
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
