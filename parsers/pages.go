package parsers

import (
  "bufio"
  "bytes"
  "fmt"
  "io"

  log "github.com/sirupsen/logrus"
  "github.com/tidwall/gjson"
)

const (
  ExpansionReferencedPosts = "tweets"
  ExpansionPlaces          = "places"
  ExpansionAuthors         = "users"
  ExpansionMedia           = "media"
)

var expansionKinds = []string{
  ExpansionReferencedPosts,
  ExpansionPlaces,
  ExpansionAuthors,
  ExpansionMedia,
}

// Page is one search call: its entities, the expansion object and the pagination metadata.
type Page struct {
  Entities []gjson.Result
  Includes gjson.Result
  Meta     gjson.Result
  Problems gjson.Result
}

func (p *Page) ReferencedPosts() (gjson.Result, bool) {
  return p.expansion(ExpansionReferencedPosts)
}

func (p *Page) Places() (gjson.Result, bool) {
  return p.expansion(ExpansionPlaces)
}

func (p *Page) Authors() (gjson.Result, bool) {
  return p.expansion(ExpansionAuthors)
}

func (p *Page) Media() (gjson.Result, bool) {
  return p.expansion(ExpansionMedia)
}

func (p *Page) Count() int {
  return int(p.Meta.Get("result_count").Int())
}

// Errors returns the raw partial-error list the API attached to a successful response.
func (p *Page) Errors() string {
  if !p.Problems.IsArray() || len(p.Problems.Array()) == 0 {
    return ""
  }
  return p.Problems.Raw
}

func (p *Page) NextToken() string {
  return p.Meta.Get("next_token").String()
}

// Fragments lays the page out as a flat fragment stream: entities, expansions, footer.
func (p *Page) Fragments() []string {
  fragments := make([]string, 0, len(p.Entities)+2)
  for _, entity := range p.Entities {
    fragments = append(fragments, entity.Raw)
  }
  if isIncludes(p.Includes) {
    fragments = append(fragments, p.Includes.Raw)
  }
  if p.Meta.Exists() {
    fragments = append(fragments, p.Meta.Raw)
  } else {
    fragments = append(fragments, `{"result_count":0}`)
  }
  return fragments
}

func (p *Page) expansion(kind string) (gjson.Result, bool) {
  if !p.Includes.Exists() {
    return gjson.Result{}, false
  }
  value := p.Includes.Get("includes." + kind)
  if !value.Exists() {
    value = p.Includes.Get(kind)
  }
  if !value.IsArray() {
    return gjson.Result{}, false
  }
  return value, true
}

// PageFromResponse reads one search API response body.
func PageFromResponse(body []byte) *Page {
  response := gjson.ParseBytes(body)
  return &Page{
    Entities: response.Get("data").Array(),
    Includes: response.Get("includes"),
    Meta:     response.Get("meta"),
    Problems: response.Get("errors"),
  }
}

func IsFooter(fragment gjson.Result) bool {
  return fragment.Get("result_count").Exists() || fragment.Get("meta.result_count").Exists()
}

func isIncludes(fragment gjson.Result) bool {
  if !fragment.IsObject() || fragment.Get("id").Exists() {
    return false
  }
  for _, kind := range expansionKinds {
    if fragment.Get(kind).IsArray() {
      return true
    }
  }
  return false
}

// GroupPages splits a flat fragment stream into one page per footer.
func GroupPages(fragments []gjson.Result) []*Page {
  var pages []*Page
  var pending []gjson.Result
  for _, fragment := range fragments {
    if !IsFooter(fragment) {
      pending = append(pending, fragment)
      continue
    }

    page := &Page{Meta: fragment, Includes: fragment}
    if meta := fragment.Get("meta"); meta.Exists() {
      page.Meta = meta
    }
    if n := len(pending); n > 0 && isIncludes(pending[n-1]) {
      page.Includes = pending[n-1]
      pending = pending[:n-1]
    }
    page.Entities = pending
    pending = nil
    pages = append(pages, page)
  }
  if len(pending) > 0 {
    log.WithField("fragments", len(pending)).Warnln("dropping fragments after the last footer")
  }
  return pages
}

// ReadFragments reads either a JSON array of fragments or one fragment per line.
func ReadFragments(r io.Reader) (fragments []gjson.Result, err error) {
  buf, err := io.ReadAll(r)
  if err != nil {
    return
  }
  buf = bytes.TrimSpace(buf)
  if len(buf) == 0 {
    return
  }
  if buf[0] == '[' {
    if !gjson.ValidBytes(buf) {
      return nil, fmt.Errorf("invalid fragment array")
    }
    fragments = gjson.ParseBytes(buf).Array()
    return
  }

  scanner := bufio.NewScanner(bytes.NewReader(buf))
  scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
  line := 0
  for scanner.Scan() {
    line++
    text := bytes.TrimSpace(scanner.Bytes())
    if len(text) == 0 {
      continue
    }
    if !gjson.ValidBytes(text) {
      return nil, fmt.Errorf("invalid fragment on line %d", line)
    }
    fragments = append(fragments, gjson.ParseBytes(append([]byte(nil), text...)))
  }
  err = scanner.Err()
  return
}
