package desk

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// UnspecifiedFolder is the reserved folder holding items with a blank
// location.
const UnspecifiedFolder = "ไม่ระบุตำแหน่ง"

// GroupByFolder maps folder name to the items whose trimmed location equals
// that name. Every name in emptyFolders appears as a key even when nothing is
// located there. Items with a blank location go under UnspecifiedFolder. The
// items of each folder keep their input order.
func GroupByFolder(items []Equipment, emptyFolders []string) map[string][]Equipment {
	groups := make(map[string][]Equipment)
	for _, name := range emptyFolders {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := groups[name]; !ok {
			groups[name] = []Equipment{}
		}
	}
	for _, item := range items {
		name := item.FolderName()
		groups[name] = append(groups[name], item)
	}
	return groups
}

// FolderNames returns the keys of groups in Thai collation order with the
// unspecified folder last.
func FolderNames(groups map[string][]Equipment) []string {
	names := make([]string, 0, len(groups))
	hasUnspecified := false
	for name := range groups {
		if name == UnspecifiedFolder {
			hasUnspecified = true
			continue
		}
		names = append(names, name)
	}
	collate.New(language.Thai).SortStrings(names)
	if hasUnspecified {
		names = append(names, UnspecifiedFolder)
	}
	return names
}

// SortFolderContents orders items for presentation and QR export: purchase
// date ascending, then warranty expiry ascending, then warranty days
// remaining ascending. Items without a warranty sort after dated ones at the
// expiry step, and the id breaks any remaining tie so the order is total.
// The input slice is not modified.
func SortFolderContents(items []Equipment, today time.Time) []Equipment {
	type keyed struct {
		item      Equipment
		purchase  time.Time
		expiry    time.Time
		hasExpiry bool
		remaining int
	}

	rows := make([]keyed, len(items))
	for i, item := range items {
		k := keyed{item: item}
		k.purchase, _ = ParseDate(item.PurchaseDate)
		if expiry, ok, err := item.Warranty(); err == nil && ok {
			k.expiry = expiry
			k.hasExpiry = true
			k.remaining = EvaluateWarranty(expiry, today).Remaining
		}
		rows[i] = k
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.purchase.Equal(b.purchase) {
			return a.purchase.Before(b.purchase)
		}
		if a.hasExpiry != b.hasExpiry {
			return a.hasExpiry
		}
		if !a.expiry.Equal(b.expiry) {
			return a.expiry.Before(b.expiry)
		}
		if a.remaining != b.remaining {
			return a.remaining < b.remaining
		}
		return a.item.ID < b.item.ID
	})

	sorted := make([]Equipment, len(rows))
	for i, r := range rows {
		sorted[i] = r.item
	}
	return sorted
}
