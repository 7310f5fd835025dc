package util

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"fmt"

	"github.com/NeowayLabs/wabbit"
	"github.com/NeowayLabs/wabbit/amqptest"
)

// testConsumer binds a queue to an exchange on a fake AMQP server and passes
// every delivery to a callback.
type testConsumer struct {
	conn    wabbit.Conn
	channel wabbit.Channel
	done    chan struct{}
}

var durable = wabbit.Option{"durable": true}

func newTestConsumer(amqpURI, exchange, exchangeType, queueName, key, ctag string,
	callback func(wabbit.Delivery)) (*testConsumer, error) {
	conn, err := amqptest.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel: %w", err)
	}
	c := &testConsumer{conn: conn, channel: ch, done: make(chan struct{})}
	if err = ch.ExchangeDeclare(exchange, exchangeType, durable); err != nil {
		c.close()
		return nil, fmt.Errorf("exchange %s: %w", exchange, err)
	}
	q, err := ch.QueueDeclare(queueName, durable)
	if err != nil {
		c.close()
		return nil, fmt.Errorf("queue %s: %w", queueName, err)
	}
	if err = ch.QueueBind(q.Name(), key, exchange, nil); err != nil {
		c.close()
		return nil, fmt.Errorf("bind %s to %s: %w", q.Name(), exchange, err)
	}
	deliveries, err := ch.Consume(q.Name(), ctag, nil)
	if err != nil {
		c.close()
		return nil, fmt.Errorf("consume %s: %w", q.Name(), err)
	}
	go func() {
		for d := range deliveries {
			callback(d)
			d.Ack(false)
		}
		close(c.done)
	}()
	return c, nil
}

func (c *testConsumer) close() error {
	if err := c.channel.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}

// Shutdown closes channel and connection and waits until all pending
// deliveries have been handled.
func (c *testConsumer) Shutdown() error {
	if err := c.close(); err != nil {
		return err
	}
	<-c.done
	return nil
}
