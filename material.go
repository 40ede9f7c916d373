package main

import "fmt"

// Material of the base plate and fins.
type Material string

const (
	MaterialAl Material = "Al" // Aluminum 6061-T6
	MaterialSS Material = "SS" // Stainless steel 304
)

// Water properties evaluated at the mean loop temperature (~65 degree C).
const (
	k_water   = 0.563  // thermal conductivity of water, W/(m K)
	rho_water = 980.5  // density of water, kg/m3
	cp_water  = 4180.0 // specific heat of water, J/(kg K)
)

// Thermophysical constants of the solid. The value is immutable once
// constructed; changing the material means constructing a new Parameters
// value, never mutating one mid-run.
type MaterialProperties struct {
	material Material
	k_s      float64 // thermal conductivity, W/(m K)
	rho_s    float64 // density, kg/m3
	cp_s     float64 // specific heat, J/(kg K)
	alpha_s  float64 // thermal diffusivity k/(rho*cp), m2/s
}

/*
Builds the property set of the selected material.

	Args:
		material: "Al" for Aluminum 6061-T6, "SS" for Stainless steel 304

	Returns:
		material property set

	Notes:
		Aluminum responds roughly 17 times faster than stainless steel
		(ratio of thermal diffusivities).
		Sources: ASM (2019) Aluminum 6061-T6, Aalco (2005) Grade 304.
*/
func NewMaterialProperties(material Material) (MaterialProperties, error) {
	var p MaterialProperties

	switch material {
	case MaterialAl:
		p = MaterialProperties{material: MaterialAl, k_s: 167.0, rho_s: 2700.0, cp_s: 900.0}
	case MaterialSS:
		p = MaterialProperties{material: MaterialSS, k_s: 16.2, rho_s: 8000.0, cp_s: 500.0}
	default:
		return MaterialProperties{}, fmt.Errorf("material must be %q or %q, got %q", MaterialAl, MaterialSS, material)
	}

	p.alpha_s = p.k_s / (p.rho_s * p.cp_s)

	return p, nil
}

func (p MaterialProperties) String() string {
	return string(p.material)
}
