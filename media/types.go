// media/types.go
package media

type AssetType string

const (
	AssetTypeCapture AssetType = "capture"
	AssetTypeUnknown AssetType = "unknown"
)
