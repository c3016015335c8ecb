package pca9685

// I2C byte operations. MODE1.AI is set by Configure so multi-byte writes walk
// consecutive registers.

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.i2c.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.i2c.Tx(d.addr, d.w[:2], nil)
}

// writeLED writes ON_L, ON_H, OFF_L, OFF_H starting at base.
func (d *Device) writeLED(base byte, on, off uint16) error {
	d.w[0] = base
	d.w[1] = byte(on)
	d.w[2] = byte(on >> 8)
	d.w[3] = byte(off)
	d.w[4] = byte(off >> 8)
	return d.i2c.Tx(d.addr, d.w[:5], nil)
}
