package common

import (
  "context"
  "net"

  "h12.io/socks"
)

type ProxySession struct {
  Proxy string
}

func (s *ProxySession) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
  type dialed struct {
    conn net.Conn
    err  error
  }
  ch := make(chan dialed, 1)
  go func() {
    conn, err := socks.Dial(s.Proxy)(network, addr)
    ch <- dialed{conn, err}
  }()
  select {
  case <-ctx.Done():
    go func() {
      if d := <-ch; d.conn != nil {
        d.conn.Close()
      }
    }()
    return nil, ctx.Err()
  case d := <-ch:
    return d.conn, d.err
  }
}
