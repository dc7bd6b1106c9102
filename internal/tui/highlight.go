package tui

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ---------------------------------------------------------------------------
// Highlight cache (per-line, global across renders)
// ---------------------------------------------------------------------------

var (
	hlCache   = make(map[string]string)
	hlCacheMu sync.RWMutex
)

func cachedHighlight(text, language, theme string) string {
	cacheKey := language + ":" + theme + ":" + text
	hlCacheMu.RLock()
	if v, ok := hlCache[cacheKey]; ok {
		hlCacheMu.RUnlock()
		return v
	}
	hlCacheMu.RUnlock()

	lex := lexers.Get(language)
	if lex == nil {
		return text
	}
	lex = chroma.Coalesce(lex)
	sty := styles.Get(theme)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, sty, it); err != nil {
		return text
	}
	result := strings.TrimRight(buf.String(), "\n")

	hlCacheMu.Lock()
	if len(hlCache) > 2000 {
		hlCache = make(map[string]string)
	}
	hlCache[cacheKey] = result
	hlCacheMu.Unlock()
	return result
}
