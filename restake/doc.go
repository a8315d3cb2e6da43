/*
Package restake implements Restake contract which is a vault that takes
custody of BioAsset tokens and pays GAS rewards for the time they stay
staked. Rewards accrue per whole second at a committee-controlled rate and
are paid from a pool funded through DepositRewards. Accrual bookkeeping is
lazy: records are checkpointed whenever the staked set of an account
changes, a payout happens or the rate is updated, so no per-block work is
required.

# Contract notifications

Staked notification. This notification is produced when an asset is taken
into vault custody.

	Staked:
	  - name: assetId
	    type: Integer
	  - name: staker
	    type: Hash160

Unstaked notification. This notification is produced when custody is
returned to the staker together with their pending rewards.

	Unstaked:
	  - name: assetId
	    type: Integer
	  - name: staker
	    type: Hash160
	  - name: rewards
	    type: Integer

RewardsClaimed notification. This notification is produced when an account
collects its pending rewards without unstaking.

	RewardsClaimed:
	  - name: account
	    type: Hash160
	  - name: amount
	    type: Integer

RewardsDeposited notification. This notification is produced when the
reward pool is funded.

	RewardsDeposited:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

RewardRateUpdated notification. This notification is produced when
committee changes the accrual rate.

	RewardRateUpdated:
	  - name: rate
	    type: Integer

PoolDrained notification. This notification is produced when committee
withdraws funds from the reward pool.

	PoolDrained:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package restake
