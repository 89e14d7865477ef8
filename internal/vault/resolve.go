package vault

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/comic/internal/paths"
	"github.com/aidanlsb/comic/internal/slugs"
	"github.com/aidanlsb/comic/internal/wikilink"
)

// Resolve finds the note a user reference points at. A reference may be a
// vault-relative path (with or without ".md"), a wikilink literal (display
// text is ignored), or a bare basename. Basenames match case-insensitively,
// then by slug.
// When folder is non-empty only notes under it are considered.
func Resolve(store Store, ref, folder string) (*Note, error) {
	ref = strings.TrimSpace(ref)
	if target, _, ok := wikilink.ParseExact(ref); ok {
		ref = target
	}
	ref = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(ref, "[["), "]]"))
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNoteNotFound)
	}
	rel := paths.NormalizeRel(ref)

	if n, err := store.Stat(strings.TrimSuffix(rel, ".md") + ".md"); err == nil {
		if paths.InFolder(n.Path, folder) {
			return n, nil
		}
	}

	notes, err := store.List(folder)
	if err != nil {
		return nil, err
	}

	want := paths.Basename(rel)
	matchers := []func(Note) bool{
		func(n Note) bool { return n.Basename == want },
		func(n Note) bool { return strings.EqualFold(n.Basename, want) },
		func(n Note) bool { return slugs.SlugName(n.Basename) == slugs.SlugName(want) },
	}
	for _, match := range matchers {
		var found []Note
		for _, n := range notes {
			if match(n) {
				found = append(found, n)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return &found[0], nil
		default:
			var candidates []string
			for _, n := range found {
				candidates = append(candidates, n.Path)
			}
			return nil, fmt.Errorf("%w: %q could be %s", ErrAmbiguousRef, ref, strings.Join(candidates, ", "))
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, ref)
}
