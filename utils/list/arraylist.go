package list

import (
	"fmt"
	"sync"
)

// List Definir la interfaz List
type List[T any] interface {
	Add(item T)                                   // Añadir un elemento al final de la lista
	Find(predicate func(T) bool) (T, int, bool)   // Permite buscar un elemento de la lista dado un predicado.
	FindAll(predicate func(T) bool) *ArrayList[T] // FindAll encuentra todos los elementos que satisfacen el predicado y los devuelve en una nueva lista
	ForEach(callback func(T))                     // A cada elemento de la lista se le va aplicar la función que le pase
	Get(index int) (T, error)                     // Obtener un elemento a partir de un índice dado
	GetAll() []T                                  // Retorna todos los elementos que se encuentran en la lista
	Remove(index int)                             // Eliminar un elemento en el índice dado
	RemoveWhere(match func(T) bool)               // Eliminar todos los elementos que cumplan el predicado
	Size() int                                    // Retornar el tamaño de la lista
}

// ArrayList implements List
type ArrayList[T any] struct {
	mu    sync.RWMutex
	items []T
}

// Add inserta un elemento al final de la lista.
//
// Parámetros:
//   - item: Elemento a insertar.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//		list.Add(10)
//		list.Add(20)
//	}
func (list *ArrayList[T]) Add(item T) {
	list.mu.Lock() // Bloqueo exclusivo para evitar cambios simultáneos
	defer list.mu.Unlock()

	list.items = append(list.items, item)
}

// Find busca el primer elemento que satisface el predicado y devuelve el
// elemento, su índice y si fue encontrado.
//
// Ejemplo:
//
//	ref, i, ok := marco.Referencias.Find(func(r Referencia) bool {
//		return r.PID == pid
//	})
func (list *ArrayList[T]) Find(predicate func(T) bool) (T, int, bool) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	for i, item := range list.items {
		if predicate(item) {
			return item, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// FindAll encuentra todos los elementos que satisfacen el predicado y los
// devuelve en una nueva lista.
func (list *ArrayList[T]) FindAll(predicate func(T) bool) *ArrayList[T] {
	list.mu.RLock()
	defer list.mu.RUnlock()

	result := &ArrayList[T]{}
	for _, item := range list.items {
		if predicate(item) {
			result.items = append(result.items, item)
		}
	}
	return result
}

// ForEach aplica el callback a cada elemento de la lista.
func (list *ArrayList[T]) ForEach(callback func(T)) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	for _, item := range list.items {
		callback(item)
	}
}

// Get obtiene un elemento a partir de un índice dado. Si el índice está fuera
// de rango retorna el valor "cero" del tipo T y un error.
func (list *ArrayList[T]) Get(index int) (T, error) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	if index < 0 || index >= len(list.items) {
		var zero T
		return zero, fmt.Errorf("index out of range: %d", index)
	}
	return list.items[index], nil
}

// GetAll retorna una copia de todos los elementos que se encuentran en la lista.
func (list *ArrayList[T]) GetAll() []T {
	list.mu.RLock()
	defer list.mu.RUnlock()

	all := make([]T, len(list.items))
	copy(all, list.items)
	return all
}

// Remove elimina el elemento en el índice dado. Fuera de rango no hace nada.
func (list *ArrayList[T]) Remove(index int) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if index < 0 || index >= len(list.items) {
		return
	}
	list.items = append(list.items[:index], list.items[index+1:]...)
}

// RemoveWhere elimina todos los elementos que cumplan el predicado.
func (list *ArrayList[T]) RemoveWhere(match func(T) bool) {
	list.mu.Lock()
	defer list.mu.Unlock()

	filtered := list.items[:0]
	for _, item := range list.items {
		if !match(item) {
			filtered = append(filtered, item)
		}
	}
	list.items = filtered
}

// Size retorna el tamaño de la lista.
func (list *ArrayList[T]) Size() int {
	list.mu.RLock()
	defer list.mu.RUnlock()

	return len(list.items)
}
