package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegions(t *testing.T) {
	regions := Regions()
	require.NotEmpty(t, regions)

	// 三级结构完整：每个省至少一个市，每个市至少一个区县
	for province, cities := range regions {
		assert.NotEmpty(t, cities, province)
		for city, districts := range cities {
			assert.NotEmpty(t, districts, province+"/"+city)
		}
	}
}

func TestRegionLookups(t *testing.T) {
	assert.NotEmpty(t, Provinces())

	cities := Cities("北京市")
	require.NotEmpty(t, cities)

	districts := Districts("北京市", cities[0])
	assert.NotEmpty(t, districts)

	// 未知地名返回空切片而不是panic
	assert.Empty(t, Cities("不存在的省"))
	assert.Empty(t, Districts("不存在的省", "不存在的市"))
}
