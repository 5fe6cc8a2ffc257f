package mameduino

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClientSendAccepted(t *testing.T) {
	port := newFakePort("", "O", "K\n")
	client := newTestClient(port, WithLogger(zaptest.NewLogger(t)))

	frame, err := RejectFrame("on")
	require.NoError(t, err)

	resp, err := client.Send(context.Background(), frame)
	require.NoError(t, err)
	assert.Equal(t, []byte{'R', 0x01, '\n'}, port.written.Bytes())
	assert.Equal(t, ScanAccepted, resp.State)
	assert.Equal(t, SetCoinReject, resp.Command)
	assert.Empty(t, resp.Info)
	assert.Equal(t, 1, port.flushed)
	assert.Equal(t, 3, port.reads)
}

func TestClientSendDumpReturnsInfo(t *testing.T) {
	port := newFakePort("REJECT: off\nB0 S: DA D8\n", "OK\n")
	client := newTestClient(port)

	resp, err := client.Send(context.Background(), DumpFrame())
	require.NoError(t, err)
	assert.Equal(t, "REJECT: off\nB0 S: DA D8\n", string(resp.Info))
	assert.Equal(t, "REJECT: off\nB0 S: DA D8", resp.Text())
}

func TestClientSendRejected(t *testing.T) {
	port := newFakePort("NK\n")
	client := newTestClient(port)

	resp, err := client.Send(context.Background(), VersionFrame())
	require.ErrorIs(t, err, ErrDeviceRejected)
	assert.Equal(t, ScanRejected, resp.State)
}

func TestClientSendTimeout(t *testing.T) {
	port := newFakePort("garbage")
	client := newTestClient(port,
		WithTimeout(50*time.Millisecond),
		WithPollInterval(10*time.Millisecond))

	resp, err := client.Send(context.Background(), DumpFrame())
	require.ErrorIs(t, err, ErrResponseTimeout)
	assert.Equal(t, ScanTimedOut, resp.State)
	assert.Equal(t, "garbage", string(resp.Info))
	assert.Equal(t, 5, port.reads)
}

func TestClientSendShortWrite(t *testing.T) {
	port := newFakePort("OK\n")
	port.short = 2
	client := newTestClient(port)

	frame, err := ButtonFrame(false, 0, []string{"UP", "LEFT"})
	require.NoError(t, err)

	resp, err := client.Send(context.Background(), frame)
	require.ErrorIs(t, err, ErrShortWrite)
	assert.Nil(t, resp)
	assert.Zero(t, port.reads, "must not read after a short write")
}

func TestClientSendWriteError(t *testing.T) {
	port := newFakePort()
	port.writeErr = errors.New("EIO")
	client := newTestClient(port)

	_, err := client.Send(context.Background(), DumpFrame())
	require.ErrorIs(t, err, ErrWriteFailed)
	assert.Contains(t, err.Error(), "EIO")
}

func TestClientSendReadError(t *testing.T) {
	port := newFakePort("MAME")
	port.readErr = errors.New("device gone")
	client := newTestClient(port)

	resp, err := client.Send(context.Background(), VersionFrame())
	require.ErrorIs(t, err, ErrReadFailed)
	assert.Equal(t, "MAME", string(resp.Info))
}

func TestClientSendCancelled(t *testing.T) {
	port := newFakePort()
	client := NewClient("/dev/ttyACM0", port, WithTimeout(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Send(ctx, DumpFrame())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientIdentify(t *testing.T) {
	client := newTestClient(newFakePort("MAMEduino 1.0.0\n", "OK\n"))
	text, err := client.Identify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "MAMEduino 1.0.0", text)
	assert.Equal(t, "MAMEduino 1.0.0", client.Identity())

	client = newTestClient(newFakePort("ESP32 bootloader\nOK\n"))
	text, err = client.Identify(context.Background())
	assert.ErrorIs(t, err, ErrNotMAMEduino)
	assert.Equal(t, "ESP32 bootloader", text)
	assert.Empty(t, client.Identity())
}

func TestClientClose(t *testing.T) {
	port := newFakePort()
	client := newTestClient(port)

	require.NoError(t, client.Close())
	assert.Equal(t, 1, port.closed)
	assert.Equal(t, "/dev/ttyACM0", client.Path())
}

func TestClientOptionsIgnoreNonPositive(t *testing.T) {
	client := NewClient("/dev/ttyACM0", newFakePort(), WithTimeout(0), WithPollInterval(-1), WithLogger(nil))
	assert.Equal(t, DefaultTimeout, client.timeout)
	assert.Equal(t, DefaultPollInterval, client.poll)
	assert.NotNil(t, client.logger)
}
