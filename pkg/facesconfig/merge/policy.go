package merge

// override replaces dst with src when src is present.
func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// overrideValue replaces dst with src when src is declared. An empty
// declared value still overrides.
func overrideValue(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func stickyTrue(dst *bool, src bool) {
	*dst = *dst || src
}

func stickyFalse(dst *bool, src bool) {
	*dst = *dst && src
}

// appendAll concatenates src after dst, keeping duplicates.
func appendAll[T any](dst *[]T, src []T) {
	if len(src) == 0 {
		return
	}
	*dst = append(*dst, src...)
}
