package permission

import (
	"regexp"

	"github.com/jellydator/ttlcache/v3"
)

// compiledRegexCache caches compiled server/world regex predicates ("R=...")
// keyed by the raw pattern. Patterns repeat heavily across nodes sharing a
// server/world scope, so compiling once per distinct pattern is worth the
// cache bookkeeping. Grounded on the teacher's lite.compiledRegexCache.
var compiledRegexCache = ttlcache.New[string, *regexp.Regexp](
	ttlcache.WithLoader[string, *regexp.Regexp](ttlcache.LoaderFunc[string, *regexp.Regexp](
		func(c *ttlcache.Cache[string, *regexp.Regexp], pattern string) *ttlcache.Item[string, *regexp.Regexp] {
			re, err := regexp.Compile(pattern)
			if err != nil {
				re = nil
			}
			return c.Set(pattern, re, ttlcache.NoTTL)
		}),
	),
)

func compileFieldRegex(pattern string) (*regexp.Regexp, error) {
	item := compiledRegexCache.Get(pattern)
	if item == nil || item.Value() == nil {
		return nil, regexErr(pattern)
	}
	return item.Value(), nil
}

type regexErr string

func (e regexErr) Error() string { return "permission: invalid regex pattern: " + string(e) }
