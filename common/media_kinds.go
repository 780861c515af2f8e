package common

const ManifestFileName = "manifest.json"

const KindOsm = "osm"
const KindMbtiles = "mbtiles"

// AllKinds is the set of file extensions catalogued inside a deployment.
var AllKinds = []string{KindOsm, KindMbtiles}

func IsKnownKind(ext string) bool {
	for _, k := range AllKinds {
		if k == ext {
			return true
		}
	}
	return false
}
