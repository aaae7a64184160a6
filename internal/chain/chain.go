package chain

import (
	"strings"
)

// Chain is one parsed entry of a configuration chain, linked to the
// entries that follow it. The head entry names the preferred module;
// later entries are fallbacks retained for the owner of the chain.
type Chain struct {
	Name    string
	Options map[string]string
	Next    *Chain
}

// Parse splits a selector string into the preferred implementation name
// and the configuration chain built from every entry.
//
// The grammar is a comma-separated list of entries, each either a bare
// name or name{key=value,key=value}:
//
//	"telnet{port=4212},none"  →  "telnet", telnet{port=4212} → none
//	"rc,none"                 →  "rc", rc → none
//	""                        →  "", nil
//
// Commas inside an option block do not split entries. Malformed option
// blocks are tolerated: text up to the first '{' is the name and
// unparseable options are ignored, since selector strings come from
// users and a best-effort reading beats rejecting the whole chain.
func Parse(selector string) (string, *Chain) {
	entries := splitEntries(selector)
	if len(entries) == 0 {
		return "", nil
	}

	var head, tail *Chain
	for _, e := range entries {
		c := parseEntry(e)
		if c == nil {
			continue
		}
		if head == nil {
			head = c
		} else {
			tail.Next = c
		}
		tail = c
	}
	if head == nil {
		return "", nil
	}
	return head.Name, head
}

// Option returns the value of an option on this chain entry, or def if
// the option is absent.
func (c *Chain) Option(key, def string) string {
	if c == nil || c.Options == nil {
		return def
	}
	if v, ok := c.Options[key]; ok {
		return v
	}
	return def
}

// String reassembles the chain into selector syntax. Mostly useful in
// logs and tests.
func (c *Chain) String() string {
	var b strings.Builder
	for n := c; n != nil; n = n.Next {
		if n != c {
			b.WriteByte(',')
		}
		b.WriteString(n.Name)
		if len(n.Options) > 0 {
			b.WriteByte('{')
			first := true
			for _, k := range sortedKeys(n.Options) {
				if !first {
					b.WriteByte(',')
				}
				first = false
				b.WriteString(k)
				b.WriteByte('=')
				b.WriteString(n.Options[k])
			}
			b.WriteByte('}')
		}
	}
	return b.String()
}

// splitEntries splits on top-level commas, keeping option blocks intact.
func splitEntries(s string) []string {
	var entries []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				entries = append(entries, s[start:i])
				start = i + 1
			}
		}
	}
	entries = append(entries, s[start:])

	out := entries[:0]
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

func parseEntry(entry string) *Chain {
	name := entry
	var opts map[string]string

	if open := strings.IndexByte(entry, '{'); open >= 0 {
		name = strings.TrimSpace(entry[:open])
		body := entry[open+1:]
		if close := strings.LastIndexByte(body, '}'); close >= 0 {
			body = body[:close]
		}
		opts = parseOptions(body)
	}
	if name == "" {
		return nil
	}
	return &Chain{Name: name, Options: opts}
}

func parseOptions(body string) map[string]string {
	opts := make(map[string]string)
	for _, pair := range strings.Split(body, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, found := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if !found {
			opts[k] = ""
			continue
		}
		opts[k] = strings.TrimSpace(v)
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Insertion sort; option maps are tiny.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
