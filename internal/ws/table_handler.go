package ws

// handleMessage dispatches one renderer command to the table.
func (c *Client) handleMessage(in Inbound) {
	table := c.hub.table

	switch in.Type {
	case "take_shot":
		params, err := table.ApplyShot(in.Power, in.Angle)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.Broadcast(Message{Type: "shot_taken", Data: params})

	case "cue_adjust":
		cue, err := table.Adjust(in.Action)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.Broadcast(Message{Type: "cue_state", Data: cue})

	case "shoot":
		params, err := table.Shoot()
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.Broadcast(Message{Type: "shot_taken", Data: params})
		c.hub.Broadcast(Message{Type: "cue_state", Data: table.Cue()})

	case "rerack":
		if err := table.Rerack(); err != nil {
			c.sendError(err.Error())
		}

	case "get_state":
		c.sendMessage(Message{Type: "snapshot", Data: table.Snapshot()})
		c.sendMessage(Message{Type: "cue_state", Data: table.Cue()})

	default:
		c.sendError("Unknown message type")
	}
}
