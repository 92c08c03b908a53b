package services

// ReconcileGallery computes the new gallery image set for an update: every
// reference present in toDelete is dropped from current (set membership, not
// position), then the newly uploaded references are appended in their given
// order. Deletion wins over survival. With empty uploaded and toDelete the
// result is the current gallery unchanged.
func ReconcileGallery(current, uploaded, toDelete []string) []string {
	drop := make(map[string]struct{}, len(toDelete))
	for _, ref := range toDelete {
		drop[ref] = struct{}{}
	}

	gallery := make([]string, 0, len(current)+len(uploaded))
	for _, ref := range current {
		if _, ok := drop[ref]; ok {
			continue
		}
		gallery = append(gallery, ref)
	}
	return append(gallery, uploaded...)
}

// ResolvePrimaryImage applies the primary-image rule: a new upload replaces
// the current image unconditionally, an explicit clear empties it, and absence
// of both leaves it unchanged.
func ResolvePrimaryImage(current, uploaded string, clear bool) string {
	if uploaded != "" {
		return uploaded
	}
	if clear {
		return ""
	}
	return current
}
