package domain

// UnlabeledBucket is the synthetic bucket for tickets without a label
const UnlabeledBucket = "unlabeled"

// Bucket is one named count in a distribution
type Bucket struct {
	Name  string
	Count int
	Color string
	Stale bool // Label seen on a ticket but missing from the registry
}

// Distribution is the label breakdown of the ticket cache.
// Buckets follow registry order, then stale labels, with the unlabeled
// bucket always last.
type Distribution struct {
	Buckets []Bucket
	Total   int
}

// Aggregate counts every cached ticket into exactly one bucket
func Aggregate(cache *TicketCache, registry *LabelRegistry) Distribution {
	known := registry.Known()
	buckets := make([]Bucket, 0, len(known)+1)
	pos := make(map[string]int, len(known))

	for _, name := range known {
		pos[name] = len(buckets)
		buckets = append(buckets, Bucket{Name: name, Color: registry.ColorOf(name)})
	}

	var stale []Bucket
	stalePos := make(map[string]int)
	unlabeled := 0

	for _, t := range cache.tickets {
		if !t.IsLabeled() {
			unlabeled++
			continue
		}
		if i, ok := pos[t.Label]; ok {
			buckets[i].Count++
			continue
		}
		if i, ok := stalePos[t.Label]; ok {
			stale[i].Count++
			continue
		}
		stalePos[t.Label] = len(stale)
		stale = append(stale, Bucket{
			Name:  t.Label,
			Count: 1,
			Color: ColorFor(t.Label, registry.colors),
			Stale: true,
		})
	}

	buckets = append(buckets, stale...)
	buckets = append(buckets, Bucket{Name: UnlabeledBucket, Count: unlabeled, Color: UnlabeledColor})

	return Distribution{Buckets: buckets, Total: cache.Len()}
}

// Bucket returns the bucket with the given name
func (d Distribution) Bucket(name string) (Bucket, bool) {
	for _, b := range d.Buckets {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// Unlabeled returns the count of tickets without a label
func (d Distribution) Unlabeled() int {
	if n := len(d.Buckets); n > 0 && d.Buckets[n-1].Name == UnlabeledBucket {
		return d.Buckets[n-1].Count
	}
	return 0
}

// Labeled returns the count of tickets carrying any label
func (d Distribution) Labeled() int {
	return d.Total - d.Unlabeled()
}

// Stale returns the names of labels counted but unknown to the registry
func (d Distribution) Stale() []string {
	var names []string
	for _, b := range d.Buckets {
		if b.Stale {
			names = append(names, b.Name)
		}
	}
	return names
}
