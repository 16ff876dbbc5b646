package postgres

import (
	"fmt"

	"github.com/mmcloughlin/geohash"
)

// Smallest cell dimension in km per geohash precision. Geohash cells
// alternate aspect ratio, so the narrow side is what guarantees coverage.
var geohashMinCellKm = []float64{
	1: 5000,
	2: 625,
	3: 156,
	4: 19.5,
	5: 4.89,
	6: 0.61,
	7: 0.153,
	8: 0.0191,
}

// geohashPrecisionFor picks the longest prefix whose cell still spans the
// radius, so the center cell plus its 8 neighbors cover the whole circle.
func geohashPrecisionFor(radiusKm float64) uint {
	precision := uint(1)
	for p := 2; p < len(geohashMinCellKm); p++ {
		if geohashMinCellKm[p] < radiusKm {
			break
		}
		precision = uint(p)
	}
	return precision
}

// geohashPrefixes returns the LIKE patterns of the 3x3 cell block around the
// center at a radius-appropriate precision. Returns nil when the radius
// exceeds the largest cell: no prefix block can cover such a circle, so the
// search must fall back to the exact distance cut alone.
func geohashPrefixes(lat, lon, radiusKm float64) []string {
	if radiusKm > geohashMinCellKm[1] {
		return nil
	}
	precision := geohashPrecisionFor(radiusKm)
	center := geohash.EncodeWithPrecision(lat, lon, precision)

	prefixes := []string{center + "%"}
	for _, neighbor := range geohash.Neighbors(center) {
		prefixes = append(prefixes, neighbor+"%")
	}
	return prefixes
}

// applyGeoFilter adds the two-stage proximity predicate: an indexed geohash
// prefix prefilter, then the exact great-circle distance cut. Radii too
// large for any prefix block get the distance cut alone.
func applyGeoFilter(qb *queryBuilder, lat, lon, radiusKm float64) {
	if prefixes := geohashPrefixes(lat, lon, radiusKm); prefixes != nil {
		qb.addCondition("%s LIKE ANY($%d)", "p.geohash", prefixes)
	}

	distance := fmt.Sprintf(
		"6371 * acos(LEAST(1.0, cos(radians($%d)) * cos(radians(p.latitude)) * cos(radians(p.longitude) - radians($%d)) + sin(radians($%d)) * sin(radians(p.latitude)))) <= $%d",
		qb.argID, qb.argID+1, qb.argID, qb.argID+2,
	)
	qb.conditions = append(qb.conditions, distance)
	qb.args = append(qb.args, lat, lon, radiusKm)
	qb.argID += 3
}
