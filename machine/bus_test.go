package machine

import "testing"

// setPort drives the processor port bits directly, bypassing DDR (tests
// only care about the resulting bank config).
func setPort(b *Bus, val uint8) {
	b.portDDR = 0x2f
	b.portData = val
}

func TestD000IsRAMWhenLoramAndHiramBothClear(t *testing.T) {
	b := NewBus()
	setPort(b, 0x00) // LORAM=0, HIRAM=0, CHAREN=0
	b.RAM[0xd020] = 0x42
	if got := b.Read(0xd020); got != 0x42 {
		t.Fatalf("expected RAM to show through at $d020 with LORAM/HIRAM clear, got %#02x", got)
	}
}

func TestD000IsCharROMWhenBankedInAndCharenClear(t *testing.T) {
	b := NewBus()
	setPort(b, pHIRAM) // HIRAM=1, LORAM=0, CHAREN=0
	b.CharROM[0x020] = 0x99
	if got := b.Read(0xd020); got != 0x99 {
		t.Fatalf("expected character ROM at $d020, got %#02x", got)
	}
}

func TestD000IsIOWhenBankedInAndCharenSet(t *testing.T) {
	b := NewBus()
	setPort(b, pHIRAM|pCHAREN)
	b.VIC = deviceFunc{
		read:  func(addr uint16, peek bool) uint8 { return 0x55 },
		write: func(addr uint16, val uint8) {},
	}
	if got := b.Read(0xd020); got != 0x55 {
		t.Fatalf("expected I/O read at $d020, got %#02x", got)
	}
}

type deviceFunc struct {
	read  func(addr uint16, peek bool) uint8
	write func(addr uint16, val uint8)
}

func (d deviceFunc) Read8(addr uint16, peek bool) uint8 { return d.read(addr, peek) }
func (d deviceFunc) Write8(addr uint16, val uint8)      { d.write(addr, val) }
