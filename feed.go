package neuron

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderRSS writes an RSS 2.0 feed of public content. Premium items are
// withheld entirely: a feed reader bypasses the gate otherwise.
func (a *App) renderRSS(c echo.Context, items []ContentItem) error {
	base := a.Config.URL
	feedItems := make([]rssItem, 0, len(items))
	for _, item := range items {
		pubDate := ""
		if t, err := time.Parse(time.RFC3339, item.CreatedAt); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		itemURL := BuildURL(base, "content", item.ID)
		feedItems = append(feedItems, rssItem{
			Title:       item.Title,
			Link:        itemURL,
			Description: item.Description,
			PubDate:     pubDate,
			GUID:        itemURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       feedItems,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
