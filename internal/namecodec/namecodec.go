// Package namecodec ofusca nombres de perros para no guardarlos en claro.
//
// OJO: esto es base64, NO encriptación. Se mantiene como codec de display
// reversible; si algún día se exige confidencialidad real, reemplazar por
// cifrado de verdad (KMS o similar) detrás de esta misma interfaz.
package namecodec

import "encoding/base64"

const unknownName = "Unknown"

// Encode devuelve el token ofuscado para un nombre en claro.
func Encode(name string) string {
	return base64.StdEncoding.EncodeToString([]byte(name))
}

// Decode recupera el nombre en claro. Si el token no decodifica,
// devuelve "Unknown" (nunca error: el display no debe romper el read path).
func Decode(token string) string {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return unknownName
	}
	return string(raw)
}
