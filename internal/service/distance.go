package service

import (
	"fmt"

	"github.com/umahmood/haversine"
)

// DistanceKm 回傳兩座標間的大圓距離（公里）
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km
}

// FormatDistanceKm 以兩位小數與 km 單位格式化距離
func FormatDistanceKm(km float64) string {
	return fmt.Sprintf("%.2f km", km)
}
