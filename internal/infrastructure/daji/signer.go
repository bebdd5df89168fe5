package daji

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Signature computes the provider signature for params.
// Entries are sorted by key, joined as k=v with '&' (nil values skipped),
// suffixed with &secret=<secret>, MD5-hashed and upper-case hex encoded.
func Signature(params map[string]any, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v := params[k]
		if v == nil {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}

	signStr := strings.Join(pairs, "&") + "&secret=" + secret
	sum := md5.Sum([]byte(signStr))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SignParams returns the request query for params with appKey and sign added.
func SignParams(params map[string]any, appKey, secret string) url.Values {
	withKey := make(map[string]any, len(params)+1)
	withKey["appKey"] = appKey
	for k, v := range params {
		withKey[k] = v
	}

	query := url.Values{}
	for k, v := range withKey {
		if v == nil {
			continue
		}
		query.Set(k, fmt.Sprint(v))
	}
	query.Set("sign", Signature(withKey, secret))
	return query
}
