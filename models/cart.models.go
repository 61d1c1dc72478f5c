package models

// CartLine is one product and its quantity in a cart
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"qty"`
}

// Cart represents a session's shopping cart. At most one line exists per product.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add puts one unit of p in the cart, merging with an existing line
func (c *Cart) Add(p Product) {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			if c.Lines[i].Quantity < MaxQuantity {
				c.Lines[i].Quantity++
			}
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{Product: p, Quantity: 1})
}

// UpdateQuantity sets the quantity of the matching line. Unparseable or
// sub-1 input becomes 1. Unknown products are ignored.
func (c *Cart) UpdateQuantity(productID, rawQty string) {
	qty := ParseQuantity(rawQty)
	for i := range c.Lines {
		if c.Lines[i].Product.ID.Hex() == productID {
			c.Lines[i].Quantity = qty
			return
		}
	}
}

// Remove drops the line for productID if present
func (c *Cart) Remove(productID string) {
	kept := make([]CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.Product.ID.Hex() != productID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// ItemCount is the total number of units across all lines
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

// MaxQuantity is the largest quantity a cart line can hold
const MaxQuantity = 9999

// ParseQuantity reads the leading integer of raw, the way a lenient form
// parser would ("3", " 3", "3 items"). Anything that does not start with a
// number, or is below 1, yields 1. Larger values are capped at MaxQuantity.
func ParseQuantity(raw string) int {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t' || raw[i] == '\n' || raw[i] == '\r') {
		i++
	}
	neg := false
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		neg = raw[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		if n <= MaxQuantity {
			n = n*10 + int(raw[i]-'0')
		}
		i++
	}
	if i == start || neg || n < 1 {
		return 1
	}
	return min(n, MaxQuantity)
}
