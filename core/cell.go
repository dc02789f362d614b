// File: cell.go
// Role: Scalar payload with a lock-guarded gradient accumulator.
//
// Concurrency:
//   - data is immutable and read without locking.
//   - grad is read under RLock and written under Lock.
package core

// NewCell returns a Cell holding data with a zero gradient.
// Complexity: O(1)
func NewCell(data float64) *Cell {
	return &Cell{data: data}
}

// Data returns the scalar payload.
func (c *Cell) Data() float64 { return c.data }

// Grad returns the current value of the gradient accumulator.
func (c *Cell) Grad() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.grad
}

// AddGrad adds delta onto the gradient accumulator.
// It is the only way contributions reach a cell during a backward pass.
func (c *Cell) AddGrad(delta float64) {
	c.mu.Lock()
	c.grad += delta
	c.mu.Unlock()
}

// SetGrad overwrites the gradient accumulator with value.
// The backward engine uses it to reset reachable cells to 0 and to seed
// the root with 1.
func (c *Cell) SetGrad(value float64) {
	c.mu.Lock()
	c.grad = value
	c.mu.Unlock()
}
