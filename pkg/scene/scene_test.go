package scene

import (
	"testing"

	"github.com/bgrewell/jps-kit/pkg/cursor"
	"github.com/bgrewell/jps-kit/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleScene(version Version) *Scene {
	uid, _ := id.NewRandom()
	templateID := id.FromU32(0x0a1f)

	comp := &Component{
		ClassName:  "JPSTransformationComponent",
		Name:       displayName("JPSTransformationComponent"),
		TemplateID: templateID,
		Properties: []*Property{
			{ClassName: "Boolean", Name: "Active", Values: []any{true}},
			{ClassName: "Float", Name: "Scale", Values: []any{float32(1.5)}},
			{ClassName: "Point3", Name: "Position", Values: []any{[3]float32{1, 2, 3}}},
			{ClassName: "String", Name: "Tag", Values: []any{"hello"}},
			{ClassName: "Integer", Name: "Counters", List: true, Values: []any{int32(1), int32(2), int32(3)}},
		},
	}
	entity := &Entity{ClassName: entityClassName, Name: "E", LinkID: 1, Components: []*Component{comp}}

	s := &Scene{Version: version, Entities: []*Entity{entity}, SceneRefs: []uint32{7, 8}}
	if version == V1 || version == V2Proto {
		s.UniqueID = uid
	}
	if version == V2Proto || version == V2 {
		s.ExtraStrings = []string{"extra1", "extra2"}
	}
	return s
}

func TestRoundTripAllVersions(t *testing.T) {
	for _, v := range []Version{V1, V2Proto, V2} {
		s := buildSampleScene(v)
		data, err := s.ToBinary(WithEndian(cursor.BigEndian))
		require.NoError(t, err, v.String())

		parsed, err := FromBinary(data, WithEndian(cursor.BigEndian))
		require.NoError(t, err, v.String())

		assert.Equal(t, v, parsed.Version)
		if v != V2 {
			assert.Equal(t, s.UniqueID, parsed.UniqueID)
		}
		if v != V1 {
			assert.Equal(t, s.ExtraStrings, parsed.ExtraStrings)
		}
		require.Len(t, parsed.Entities, 1)
		assert.Equal(t, "E", parsed.Entities[0].Name)
		assert.Equal(t, s.SceneRefs, parsed.SceneRefs)

		require.Len(t, parsed.Entities[0].Components, 1)
		pc := parsed.Entities[0].Components[0]
		assert.Equal(t, "Transformation", pc.Name)
		assert.Equal(t, "0,0,0,0,0,0,0,0,0,0,0,0,0,0,a,1f", pc.TemplateID.ToStringNoLeaders(16))

		active := pc.Property("Active")
		require.NotNil(t, active)
		assert.Equal(t, true, active.Value())

		tag := pc.Property("Tag")
		require.NotNil(t, tag)
		assert.Equal(t, "hello", tag.Value())

		counters := pc.Property("Counters")
		require.NotNil(t, counters)
		assert.True(t, counters.List)
		assert.Equal(t, []any{int32(1), int32(2), int32(3)}, counters.Values)
	}
}

func TestVersionSentinelRouting(t *testing.T) {
	s := buildSampleScene(V1)
	data, err := s.ToBinary()
	require.NoError(t, err)
	assert.NotEqual(t, uint32(v2Sentinel), beU32(data[0:4]))

	parsed, err := FromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, V1, parsed.Version)
}

func beU32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func TestStringPoolInsertionOrder(t *testing.T) {
	pool := newStringPool(V2)
	pool.intern("E")
	pool.intern("JPSTransformationComponent")
	pool.intern("a,1f")
	pool.intern("Boolean")
	pool.intern("Active")

	c := cursor.New(pool.bytes(), cursor.LittleEndian, cursor.Overwrite)
	expect := []string{"E", "JPSTransformationComponent", "a,1f", "Boolean", "Active"}
	for _, want := range expect {
		got, err := c.ReadJPSString()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestStorageModeRoundTripAllTags(t *testing.T) {
	for tag, flags := range storageModeTable {
		got, err := storageModeFromTag(tag)
		require.NoError(t, err)
		assert.Equal(t, flags, got)

		roundTag, err := storageModeToTag(flags)
		require.NoError(t, err)
		assert.Equal(t, tag, roundTag)
	}
}

func TestBadStorageModeOnImpossibleCombination(t *testing.T) {
	_, err := storageModeToTag(storageFlags{list: false, asset: false, palette: true, template: true})
	assert.Error(t, err)
}

func TestMergeAppendsListValues(t *testing.T) {
	base := &Scene{Entities: []*Entity{{
		Name: "E",
		Components: []*Component{{
			ClassName:  "JPSTransformationComponent",
			Properties: []*Property{{ClassName: "Integer", Name: "Nums", List: true, Values: []any{int32(1), int32(2), int32(3)}}},
		}},
	}}}
	patch := &Scene{Entities: []*Entity{{
		Name: "e", // case-insensitive match
		Components: []*Component{{
			ClassName:  "JPSTransformationComponent",
			Properties: []*Property{{ClassName: "Integer", Name: "Nums", List: true, Values: []any{int32(4), int32(5)}}},
		}},
	}}}

	base.Merge(patch)

	nums := base.Entities[0].Components[0].Property("Nums")
	require.NotNil(t, nums)
	assert.Equal(t, []any{int32(1), int32(2), int32(3), int32(4), int32(5)}, nums.Values)
}

func TestJSONRoundTrip(t *testing.T) {
	s := buildSampleScene(V2)
	str, err := s.ToJSON()
	require.NoError(t, err)

	parsed, err := FromJSON(str)
	require.NoError(t, err)

	require.Len(t, parsed.Entities, 1)
	assert.Equal(t, "E", parsed.Entities[0].Name)
	pc := parsed.Entities[0].Components[0]
	assert.Equal(t, "Transformation", pc.Name)
	assert.Equal(t, "0,0,0,0,0,0,0,0,0,0,0,0,0,0,a,1f", pc.TemplateID.ToStringNoLeaders(16))
	assert.Equal(t, true, pc.Property("Active").Value())
	assert.Equal(t, float32(1.5), pc.Property("Scale").Value())
	assert.Equal(t, [3]float32{1, 2, 3}, pc.Property("Position").Value())
}
