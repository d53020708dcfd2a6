package query

import (
	"h3router/pkg/edgemeta"
	"h3router/pkg/shortcut"
)

// buildChainFixture returns a four-edge line graph s=0 -(+1)-> 1 -(lat)-> 2
// -(-1)-> 3=t with no cell information (degenerate high cell), used across
// this package's conformance tests: every algorithm should agree on a total
// cost of 10 for s=0, t=3 along this fixture.
func buildChainFixture() (*shortcut.Store, *edgemeta.Store) {
	records := []shortcut.Record{
		shortcut.NewRecord(0, 1, 5.0, 0, shortcut.NoViaEdge, shortcut.InsideUpward),
		shortcut.NewRecord(1, 2, 1.0, 0, shortcut.NoViaEdge, shortcut.InsideLateral),
		shortcut.NewRecord(2, 3, 2.0, 0, shortcut.NoViaEdge, shortcut.InsideDownward),
	}
	store, err := shortcut.Build(records, 0)
	if err != nil {
		panic(err)
	}

	meta := edgemeta.NewStore(3)
	meta.Put(0, edgemeta.Meta{Cost: 1.0, Length: 10})
	meta.Put(1, edgemeta.Meta{Cost: 1.0, Length: 10})
	meta.Put(2, edgemeta.Meta{Cost: 1.0, Length: 10})
	meta.Put(3, edgemeta.Meta{Cost: 2.0, Length: 20})

	return store, meta
}
