package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/dsnet/compress/bzip2"
	"github.com/fahrizal-w/parastar/pkg/geo"
)

// WriteGraph persists the network as a bzip2-compressed text file:
// one header line "numVertices numEdges", then one line per vertex
// "id lat lon", then one line per edge "from to weight".
func (rn *RoadNetwork) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", rn.NumberOfVertices(), rn.NumberOfEdges())

	for id, c := range rn.coordinates {
		latF := strconv.FormatFloat(c.Lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(c.Lon, 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", id, latF, lonF)
	}

	for from, edges := range rn.adjacency {
		for _, e := range edges {
			weightF := strconv.FormatFloat(e.Weight, 'f', -1, 64)
			fmt.Fprintf(w, "%d %d %s\n", from, e.To, weightF)
		}
	}

	return w.Flush()
}

// ReadGraph loads a network previously written by WriteGraph.
func ReadGraph(filename string) (*RoadNetwork, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	r := bufio.NewScanner(bz)
	r.Buffer(make([]byte, 1024*1024), 1024*1024)

	var numVertices, numEdges int
	if !r.Scan() {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedGraph)
	}
	if _, err := fmt.Sscanf(r.Text(), "%d %d", &numVertices, &numEdges); err != nil {
		return nil, fmt.Errorf("%w: bad header: %v", ErrMalformedGraph, err)
	}

	coordinates := make(map[int64]geo.Coordinate, numVertices)
	for i := 0; i < numVertices; i++ {
		if !r.Scan() {
			return nil, fmt.Errorf("%w: truncated vertex section", ErrMalformedGraph)
		}
		var (
			id       int64
			lat, lon float64
		)
		if _, err := fmt.Sscanf(r.Text(), "%d %f %f", &id, &lat, &lon); err != nil {
			return nil, fmt.Errorf("%w: bad vertex line %q: %v", ErrMalformedGraph, r.Text(), err)
		}
		coordinates[id] = geo.NewCoordinate(lat, lon)
	}

	adjacency := make(map[int64][]Edge, numVertices)
	for i := 0; i < numEdges; i++ {
		if !r.Scan() {
			return nil, fmt.Errorf("%w: truncated edge section", ErrMalformedGraph)
		}
		var (
			from, to int64
			weight   float64
		)
		if _, err := fmt.Sscanf(r.Text(), "%d %d %f", &from, &to, &weight); err != nil {
			return nil, fmt.Errorf("%w: bad edge line %q: %v", ErrMalformedGraph, r.Text(), err)
		}
		adjacency[from] = append(adjacency[from], NewEdge(to, weight))
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	return NewRoadNetwork(adjacency, coordinates)
}
