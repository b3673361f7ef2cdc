package domain

// Insert returns a new collection with a placed first. The input slice is left untouched.
func Insert(collection []Activity, a Activity) []Activity {
	out := make([]Activity, 0, len(collection)+1)
	out = append(out, a)
	return append(out, collection...)
}

// IsEmpty reports whether the collection holds no activities.
func IsEmpty(collection []Activity) bool {
	return len(collection) == 0
}
