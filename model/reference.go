package model

// ReferenceName is a known character or location a mention can resolve to.
type ReferenceName struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"name"`
	Kind        Label  `json:"kind"`
}

// Character is a project character as supplied by the caller.
type Character struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location is a project world node as supplied by the caller.
type Location struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// CharacterReferences flattens characters into person reference names,
// keeping the caller's order.
func CharacterReferences(characters []Character) []ReferenceName {
	refs := make([]ReferenceName, 0, len(characters))
	for _, c := range characters {
		refs = append(refs, ReferenceName{ID: c.ID, DisplayName: c.Name, Kind: LabelPerson})
	}
	return refs
}

// LocationReferences flattens locations into location reference names,
// keeping the caller's order.
func LocationReferences(locations []Location) []ReferenceName {
	refs := make([]ReferenceName, 0, len(locations))
	for _, l := range locations {
		refs = append(refs, ReferenceName{ID: l.ID, DisplayName: l.Title, Kind: LabelLocation})
	}
	return refs
}

// DisplayNames returns the display names of refs in order.
func DisplayNames(refs []ReferenceName) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.DisplayName)
	}
	return names
}

// FindReference returns the first reference with exactly the given display
// name. Later records with the same name are never returned.
func FindReference(refs []ReferenceName, displayName string) (ReferenceName, bool) {
	for _, r := range refs {
		if r.DisplayName == displayName {
			return r, true
		}
	}
	return ReferenceName{}, false
}
