package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// InitServer inicializa el servidor, en caso de no poder levantarlo retorna un error
//
// Parámetros:
//   - port: puerto donde se iniciará el servidor
//
// Ejemplo:
//
//	func main() {
//		err := server.InitServer(models.KernelConfig.PortKernel)
//		if err != nil {
//			panic(err)
//		}
//	}
func InitServer(port int) error {
	addr := ":" + strconv.Itoa(port)

	err := http.ListenAndServe(addr, nil)
	if err != nil {
		fmt.Println("Error al escuchar en el puerto " + addr)
		fmt.Println(err)
	}
	return err
}

// SendJsonResponse retorna la respuesta del servidor en formato JSON
//
// Parámetros:
//   - writer: el http.ResponseWriter con el que se escribe la respuesta HTTP
//   - data: cualquier estructura de datos que se quiera enviar al cliente, se convierte automáticamente a JSON.
func SendJsonResponse(writer http.ResponseWriter, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		http.Error(writer, "Error al convertir datos a JSON", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(response)
}

// DecodeJsonRequest decodifica el body JSON de una request dentro de dest.
// Si el body está roto responde 400 y devuelve false, para que el handler
// corte ahí.
//
// Ejemplo:
//
//	func Handler(w http.ResponseWriter, r *http.Request) {
//		var req SyscallRequest
//		if !server.DecodeJsonRequest(w, r, &req) {
//			return
//		}
//		...
//	}
func DecodeJsonRequest(writer http.ResponseWriter, request *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(request.Body).Decode(dest); err != nil {
		http.Error(writer, "Invalid request", http.StatusBadRequest)
		return false
	}
	return true
}
