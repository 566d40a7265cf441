package document

import (
	"errors"
	"testing"
)

func TestGeometry_Polygons(t *testing.T) {
	tests := []struct {
		name    string
		indices []int32
		want    [][]int32
	}{
		{
			name:    "single triangle",
			indices: []int32{0, 1, ^int32(2)},
			want:    [][]int32{{0, 1, 2}},
		},
		{
			name:    "quad and triangle",
			indices: []int32{0, 1, 2, ^int32(3), 4, 5, ^int32(6)},
			want:    [][]int32{{0, 1, 2, 3}, {4, 5, 6}},
		},
		{
			name:    "unterminated trailing run dropped",
			indices: []int32{0, 1, ^int32(2), 3, 4},
			want:    [][]int32{{0, 1, 2}},
		},
		{
			name:    "empty",
			indices: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := NewGeometry(1, "g")
			geo.PolygonVertexIndex = tt.indices

			got := geo.Polygons()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d polygons, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if len(got[i]) != len(tt.want[i]) {
					t.Fatalf("polygon %d: got %v, want %v", i, got[i], tt.want[i])
				}
				for j := range got[i] {
					if got[i][j] != tt.want[i][j] {
						t.Errorf("polygon %d index %d: got %d, want %d", i, j, got[i][j], tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestLayerElementNormal_Resolve(t *testing.T) {
	values := [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	tests := []struct {
		name          string
		mapping       MappingMode
		reference     ReferenceMode
		indexes       []int32
		polygon       int
		polygonVertex int
		controlPoint  int
		want          [3]float64
		wantErr       error
	}{
		{
			name:          "by polygon vertex direct",
			mapping:       MappingByPolygonVertex,
			reference:     ReferenceDirect,
			polygonVertex: 1,
			want:          [3]float64{0, 1, 0},
		},
		{
			name:          "by control point direct",
			mapping:       MappingByControlPoint,
			reference:     ReferenceDirect,
			polygonVertex: 1,
			controlPoint:  2,
			want:          [3]float64{0, 0, 1},
		},
		{
			name:          "by polygon vertex index to direct",
			mapping:       MappingByPolygonVertex,
			reference:     ReferenceIndexToDirect,
			indexes:       []int32{2, 1, 0},
			polygonVertex: 0,
			want:          [3]float64{0, 0, 1},
		},
		{
			name:          "all same ignores indices",
			mapping:       MappingAllSame,
			reference:     ReferenceDirect,
			polygonVertex: 2,
			controlPoint:  1,
			want:          [3]float64{1, 0, 0},
		},
		{
			name:          "unmapped mode",
			mapping:       MappingNone,
			reference:     ReferenceDirect,
			polygonVertex: 0,
			wantErr:       ErrUnsupportedMapping,
		},
		{
			name:          "value index out of range",
			mapping:       MappingByPolygonVertex,
			reference:     ReferenceDirect,
			polygonVertex: 7,
			wantErr:       ErrLayerOutOfRange,
		},
		{
			name:          "index array out of range",
			mapping:       MappingByPolygonVertex,
			reference:     ReferenceIndexToDirect,
			indexes:       []int32{0},
			polygonVertex: 3,
			wantErr:       ErrLayerOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			le := &LayerElementNormal{
				Mapping:   tt.mapping,
				Reference: tt.reference,
				Values:    values,
				Indexes:   tt.indexes,
			}
			got, err := le.Normal(tt.polygon, tt.polygonVertex, tt.controlPoint)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normal() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayerElementUV_Resolve(t *testing.T) {
	le := &LayerElementUV{
		Mapping:   MappingByPolygonVertex,
		Reference: ReferenceIndexToDirect,
		Values:    [][2]float64{{0, 0}, {1, 0}, {1, 1}},
		Indexes:   []int32{2, 0, 1},
	}

	got, err := le.UV(0, 0, 0)
	if err != nil {
		t.Fatalf("UV() failed: %v", err)
	}
	if got != ([2]float64{1, 1}) {
		t.Errorf("UV() = %v, want (1,1)", got)
	}
}

func TestLayerElementMaterial_Slot(t *testing.T) {
	tests := []struct {
		name    string
		mapping MappingMode
		indexes []int32
		polygon int
		want    int
		wantErr error
	}{
		{
			name:    "by polygon",
			mapping: MappingByPolygon,
			indexes: []int32{0, 1, 0},
			polygon: 1,
			want:    1,
		},
		{
			name:    "all same",
			mapping: MappingAllSame,
			indexes: []int32{2},
			polygon: 5,
			want:    2,
		},
		{
			name:    "polygon out of range",
			mapping: MappingByPolygon,
			indexes: []int32{0},
			polygon: 3,
			wantErr: ErrLayerOutOfRange,
		},
		{
			name:    "unsupported mapping",
			mapping: MappingByPolygonVertex,
			indexes: []int32{0},
			polygon: 0,
			wantErr: ErrUnsupportedMapping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			le := &LayerElementMaterial{Mapping: tt.mapping, Indexes: tt.indexes}
			got, err := le.Slot(tt.polygon)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Slot() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Slot() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMappingMode_String(t *testing.T) {
	tests := []struct {
		mode MappingMode
		want string
	}{
		{MappingByControlPoint, "ByControlPoint"},
		{MappingByPolygonVertex, "ByPolygonVertex"},
		{MappingByPolygon, "ByPolygon"},
		{MappingAllSame, "AllSame"},
		{MappingMode(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
