// Package mameduino talks to the MAMEduino arcade input adapter, an Arduino
// Leonardo that turns cabinet buttons and coin mechanisms into USB keyboard
// presses.
//
// Every request is a short frame: a command byte, an optional button or coin
// index, up to MaxKeys key codes and a '\n' terminator. The device answers
// with optional text followed by "OK\n" or "NK\n".
//
//	frame, err := mameduino.ButtonFrame(false, 0, []string{"UP", "LEFT"})
//	if err != nil {
//	    return err
//	}
//	port, err := mameduino.OpenSerial("/dev/ttyACM0")
//	if err != nil {
//	    return err
//	}
//	client := mameduino.NewClient("/dev/ttyACM0", port)
//	defer client.Close()
//	_, err = client.Send(ctx, frame)
//
// Use a Detector to find the device without knowing its path.
package mameduino
