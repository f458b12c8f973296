package contentful

import "encoding/json"

// Sys is the system metadata block Contentful attaches to every resource.
type Sys struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	LinkType    string       `json:"linkType,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
	Locale      string       `json:"locale,omitempty"`
	ContentType *ContentType `json:"contentType,omitempty"`
}

// ContentType is the link to an entry's content type.
type ContentType struct {
	Sys struct {
		ID string `json:"id"`
	} `json:"sys"`
}

// Link points at another entry or asset by ID.
type Link struct {
	Sys Sys `json:"sys"`
}

// Entry is a raw content entry. Fields are left undecoded; callers decode them
// into their own content model.
type Entry struct {
	Sys    Sys             `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

// Asset is a media file managed by Contentful.
type Asset struct {
	Sys    Sys         `json:"sys"`
	Fields AssetFields `json:"fields"`
}

// AssetFields holds the localized asset metadata.
type AssetFields struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	File        AssetFile `json:"file"`
}

// AssetFile describes the binary behind an asset.
type AssetFile struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Details     struct {
		Size  int64 `json:"size"`
		Image *struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"image,omitempty"`
	} `json:"details"`
}

// Includes carries linked resources resolved by the include parameter.
type Includes struct {
	Entry []Entry `json:"Entry"`
	Asset []Asset `json:"Asset"`
}

// Collection is the response body of an entries query.
type Collection struct {
	Total    int      `json:"total"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
	Items    []Entry  `json:"items"`
	Includes Includes `json:"includes"`
}

// Asset returns the included asset with the given ID.
func (c *Collection) Asset(id string) (Asset, bool) {
	for _, a := range c.Includes.Asset {
		if a.Sys.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// Assets indexes all included assets by ID.
func (c *Collection) Assets() map[string]Asset {
	out := make(map[string]Asset, len(c.Includes.Asset))
	for _, a := range c.Includes.Asset {
		out[a.Sys.ID] = a
	}
	return out
}
