package entity

// Branch representa una sucursal física de la farmacia: la unidad de
// partición de datos. Se crea y elimina vía el Directory Manager; no tiene
// otras mutaciones.
type Branch struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
