package utils

// SafeSlice 截取前 max 个元素，长度不足时原样返回
func SafeSlice[T any](slice []T, max int) []T {
	if max < 0 || len(slice) < max {
		return slice
	}
	return slice[:max]
}

func Contains[T comparable](slice []T, target T) bool {
	return IndexOf(slice, target) >= 0
}

func IndexOf[T comparable](slice []T, target T) int {
	for i, item := range slice {
		if item == target {
			return i
		}
	}
	return -1
}

// RemoveFirst 返回删除第一个 target 之后的新切片，不修改入参
func RemoveFirst[T comparable](slice []T, target T) ([]T, bool) {
	i := IndexOf(slice, target)
	if i < 0 {
		return slice, false
	}
	out := make([]T, 0, len(slice)-1)
	out = append(out, slice[:i]...)
	out = append(out, slice[i+1:]...)
	return out, true
}
