package transform3d

// maxCacheAxis is the hardware ceiling for a capture surface axis.
const maxCacheAxis = 16384

// pow2Exp returns the smallest e with 2^e >= v.
func pow2Exp(v uint64) uint32 {
	var e uint32
	for (uint64(1) << e) < v {
		e++
	}
	return e
}

// snapPow2 rounds v up to the next power of two and clamps the result
// to [1, maxCacheAxis].
func snapPow2(v uint64) uint32 {
	snapped := uint64(1) << pow2Exp(v)
	if snapped < 1 {
		return 1
	}
	if snapped > maxCacheAxis {
		return maxCacheAxis
	}
	return uint32(snapped)
}

// cacheResolution derives the capture-surface resolution from the
// source's native extent. Without mipmapping the native resolution is
// used unchanged. With mipmapping each axis snaps up to a power of
// two, and the non-dominant axis is then recomputed from the snapped
// dominant axis and the native aspect ratio, keeping the surface's
// shape close to the source's instead of rounding both axes apart.
func cacheResolution(native Extent, mipmapping bool) Extent {
	if !mipmapping {
		return native
	}

	native = native.clamped()
	aspect := float64(native.Width) / float64(native.Height)
	cache := Extent{
		Width:  snapPow2(uint64(native.Width)),
		Height: snapPow2(uint64(native.Height)),
	}

	switch {
	case aspect > 1:
		cache.Height = snapPow2(uint64(float64(cache.Width) / aspect))
	case aspect < 1:
		cache.Width = snapPow2(uint64(float64(cache.Height) * aspect))
	}
	return cache
}

// mipLevelCount returns the number of mip levels to allocate for a
// cache surface: enough to reduce the longer axis all the way down.
func mipLevelCount(e Extent) uint32 {
	return max(pow2Exp(uint64(e.Width)), pow2Exp(uint64(e.Height)), 1)
}
