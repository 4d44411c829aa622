package rpc

import (
	"net"
	"net/http"
	"net/rpc"
	"strconv"

	"nescore/hw"
)

// Emu is the emulator side of the RPC server.
type Emu interface {
	Reset()
	SetPause(pause bool)
	StepFrame()
	Stop()
	Frames() uint64
	Frame() *hw.Frame
}

type emuProxy struct {
	emu Emu
}

func (ep *emuProxy) Reset(_, _ *struct{}) error             { ep.emu.Reset(); return nil }
func (ep *emuProxy) SetPause(pause bool, _ *struct{}) error { ep.emu.SetPause(pause); return nil }
func (ep *emuProxy) StepFrame(_, _ *struct{}) error         { ep.emu.StepFrame(); return nil }
func (ep *emuProxy) Stop(_, _ *struct{}) error              { ep.emu.Stop(); return nil }

func (ep *emuProxy) Frames(_ *struct{}, reply *uint64) error {
	*reply = ep.emu.Frames()
	return nil
}

// Frame replies with the last frame palette indices, or nothing if no frame
// has been completed yet.
func (ep *emuProxy) Frame(_ *struct{}, reply *[]byte) error {
	if f := ep.emu.Frame(); f != nil {
		*reply = append([]byte(nil), f.Pix[:]...)
	}
	return nil
}

type Server struct {
	l net.Listener
}

// NewServer starts serving emu on localhost:port.
func NewServer(port int, emu Emu) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("emu", &emuProxy{emu: emu}); err != nil {
		return nil, err
	}
	l, err := net.Listen("tcp", "localhost:"+strconv.Itoa(port))
	if err != nil {
		return nil, err
	}

	modRPC.InfoZ("rpc server listening").Int("port", port).End()
	go func() {
		if err := http.Serve(l, srv); err != nil {
			modRPC.DebugZ("rpc server stopped").Error("err", err).End()
		}
	}()
	return &Server{l: l}, nil
}

func (s *Server) Close() error { return s.l.Close() }
