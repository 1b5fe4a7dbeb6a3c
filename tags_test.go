package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"calm", "logical"}, splitTags("calm;logical"))
	assert.Equal(t, []string{"calm"}, splitTags("calm"))

	// Blank and NaN-like leftovers decode to an empty set, never an error.
	assert.Nil(t, splitTags(""))
	assert.Nil(t, splitTags("   "))
	assert.Nil(t, splitTags("nan"))
	assert.Nil(t, splitTags("NaN"))

	// Duplicates and stray separators are cleaned up.
	assert.Equal(t, []string{"calm", "logical"}, splitTags("calm;;logical;calm; "))
}

func TestJoinTags(t *testing.T) {
	assert.Equal(t, "calm;logical", joinTags([]string{"calm", "logical"}))
	assert.Equal(t, "", joinTags(nil))
	assert.Equal(t, "calm", joinTags([]string{"calm", "calm", ""}))
}

func TestSplitJoinRoundTrip(t *testing.T) {
	tags := []string{"leader", "humorous", "spontaneous"}
	assert.Equal(t, tags, splitTags(joinTags(tags)))
}

func TestDedupeTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupeTags([]string{"a", "b", "a", " b ", ""}))
	assert.Nil(t, dedupeTags(nil))
	assert.Nil(t, dedupeTags([]string{"", "  "}))
}

func TestOverlapCount(t *testing.T) {
	assert.Equal(t, 2, overlapCount([]string{"a", "b", "c"}, []string{"b", "c", "d"}))
	assert.Equal(t, 0, overlapCount([]string{"a"}, []string{"b"}))
	assert.Equal(t, 0, overlapCount(nil, []string{"a"}))
}

func TestIsOpenPreference(t *testing.T) {
	assert.True(t, isOpenPreference(nil))
	assert.True(t, isOpenPreference([]string{}))
	assert.True(t, isOpenPreference([]string{"slim", TagAny}))
	assert.False(t, isOpenPreference([]string{"slim"}))
}
