package capture

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// X11Backend captures screen regions from the X11 root window
type X11Backend struct {
	conn   *xgb.Conn
	root   xproto.Window
	screen *xproto.ScreenInfo
	mu     sync.Mutex
}

// NewX11Backend connects to the X server. Works for both native X11
// sessions and XWayland.
func NewX11Backend() (*X11Backend, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	return &X11Backend{
		conn:   conn,
		root:   screen.Root,
		screen: screen,
	}, nil
}

// Name returns the backend name
func (b *X11Backend) Name() string {
	return "x11"
}

// IsAvailable checks if X11 capture is available
func (b *X11Backend) IsAvailable() bool {
	return b.conn != nil
}

// Close closes the X11 connection
func (b *X11Backend) Close() error {
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return nil
}

// CaptureRegion captures a region of the root window
func (b *X11Backend) CaptureRegion(x, y, width, height int) (*image.RGBA, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return nil, fmt.Errorf("x11 connection closed")
	}

	reply, err := xproto.GetImage(
		b.conn,
		xproto.ImageFormatZPixmap,
		xproto.Drawable(b.root),
		int16(x), int16(y),
		uint16(width), uint16(height),
		0xffffffff,
	).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return b.convertImageData(reply.Data, width, height)
}

// convertImageData converts X11 ZPixmap data to RGBA
func (b *X11Backend) convertImageData(data []byte, width, height int) (*image.RGBA, error) {
	depth := int(b.screen.RootDepth)
	if depth != 24 && depth != 32 {
		return nil, fmt.Errorf("unsupported root depth: %d", depth)
	}
	if len(data) < width*height*4 {
		return nil, fmt.Errorf("short image data: got %d bytes, need %d", len(data), width*height*4)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			// BGRA to RGBA
			img.SetRGBA(x, y, color.RGBA{
				R: data[i+2],
				G: data[i+1],
				B: data[i],
				A: 255,
			})
		}
	}
	return img, nil
}
